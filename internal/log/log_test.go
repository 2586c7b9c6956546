// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btclog"
	"github.com/stretchr/testify/require"
)

// TestParseAndSetDebugLevels ensures level strings are validated and
// applied to the right subsystems.
func TestParseAndSetDebugLevels(t *testing.T) {
	tests := []struct {
		name       string
		debugLevel string
		wantErr    bool
		levels     map[string]btclog.Level
	}{{
		name:       "all subsystems",
		debugLevel: "debug",
		levels: map[string]btclog.Level{
			"KDFS": btclog.LevelDebug,
			"BP38": btclog.LevelDebug,
			"ECDS": btclog.LevelDebug,
			"KTOL": btclog.LevelDebug,
		},
	}, {
		name:       "pairs",
		debugLevel: "KDFS=trace,BP38=warn",
		levels: map[string]btclog.Level{
			"KDFS": btclog.LevelTrace,
			"BP38": btclog.LevelWarn,
		},
	}, {
		name:       "invalid level",
		debugLevel: "loud",
		wantErr:    true,
	}, {
		name:       "invalid pair",
		debugLevel: "KDFS=trace,BP38",
		wantErr:    true,
	}, {
		name:       "unknown subsystem",
		debugLevel: "PEER=info",
		wantErr:    true,
	}, {
		name:       "invalid level in pair",
		debugLevel: "ECDS=loud",
		wantErr:    true,
	}}

	for _, test := range tests {
		err := ParseAndSetDebugLevels(test.debugLevel)
		if test.wantErr {
			require.Error(t, err, test.name)
			continue
		}
		require.NoError(t, err, test.name)
		for subsys, level := range test.levels {
			require.Equal(t, level, SubsystemLoggers[subsys].Level(),
				"%s: %s", test.name, subsys)
		}
	}

	// Unknown subsystems are ignored by SetLogLevel.
	SetLogLevel("NOPE", "trace")
	SetLogLevels("info")
}

// TestSupportedSubsystems ensures the subsystems are reported sorted.
func TestSupportedSubsystems(t *testing.T) {
	require.Equal(t, []string{"BP38", "ECDS", "KDFS", "KTOL"},
		SupportedSubsystems())
}

// TestInitLogRotator ensures log output reaches the rotated file.
func TestInitLogRotator(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "keytool.log")
	require.NoError(t, InitLogRotator(logFile))
	defer func() {
		LogRotator.Close()
		LogRotator = nil
	}()

	SetLogLevel("KTOL", "info")
	KtolLog.Infof("rotator test")
	LogRotator.Close()

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	require.Contains(t, string(content), "rotator test")
	require.Contains(t, string(content), "KTOL")
}
