// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	flags "github.com/jessevdk/go-flags"
	"github.com/paybullion/keycore/internal/log"
	"github.com/paybullion/keycore/internal/version"
	"github.com/paybullion/keycore/keys"
	"github.com/paybullion/keycore/sampleconfig"
)

const (
	defaultConfigFilename = "keytool.conf"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "keytool.log"
	defaultLogLevel       = "info"
	defaultNetwork        = "mainnet"
)

var (
	defaultHomeDir    = btcutil.AppDataDir("keytool", false)
	defaultConfigFile = filepath.Join(defaultHomeDir, defaultConfigFilename)
	defaultLogDir     = filepath.Join(defaultHomeDir, defaultLogDirname)
)

// errShowInfo is returned by loadConfig when an informational flag was
// handled and the caller should exit without running a command.
var errShowInfo = errors.New("informational flag handled")

// config defines the configuration options for keytool.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ShowVersion     bool   `short:"V" long:"version" description:"Display version information and exit"`
	ConfigFile      string `short:"C" long:"configfile" description:"Path to configuration file"`
	LogDir          string `long:"logdir" description:"Directory to log output"`
	NoFileLogging   bool   `long:"nofilelogging" description:"Disable file logging"`
	DebugLevel      string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems -- Use show to list available subsystems"`
	Network         string `short:"n" long:"network" description:"Network of addresses and WIF keys {mainnet, testnet3}"`
	Password        string `short:"P" long:"password" description:"Password for decrypt and encrypt -- read from the terminal or the first line of stdin when unset"`
	Quiet           bool   `short:"q" long:"quiet" description:"Do not report key derivation progress"`
	PubKeyCacheSize uint   `long:"pubkeycachesize" description:"Number of parsed public keys kept when verifying messages"`

	netParams *keys.NetParams
}

// cleanAndExpandPath expands environment variables and leading ~ in the
// passed path, cleans the result, and returns it.
func cleanAndExpandPath(path string) string {
	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		homeDir := filepath.Dir(defaultHomeDir)
		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}

// fileExists reports whether the named file or directory exists.
func fileExists(name string) bool {
	if _, err := os.Stat(name); err != nil {
		if os.IsNotExist(err) {
			return false
		}
	}
	return true
}

// createDefaultConfigFile writes the sample configuration to destPath,
// creating its directory when needed.
func createDefaultConfigFile(destPath string) error {
	err := os.MkdirAll(filepath.Dir(destPath), 0700)
	if err != nil {
		return err
	}
	return os.WriteFile(destPath, []byte(sampleconfig.FileContents), 0600)
}

// usageError writes err and the help text to stderr and returns err.
func usageError(parser *flags.Parser, err error) error {
	fmt.Fprintln(os.Stderr, err)
	parser.WriteHelp(os.Stderr)
	return err
}

// loadConfig initializes and parses the config using a config file and command
// line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Pre-parse the command line to check for an alternative config file
//  3. Load configuration file overwriting defaults with any specified options
//  4. Parse CLI options and overwrite/add any specified options
//
// The above results in keytool functioning properly without any config
// settings while still allowing the user to override settings with config
// files and command line options.  Command line options always take
// precedence.  The remaining arguments name the command and its operands.
func loadConfig(args []string) (*config, []string, error) {
	// Default config.
	cfg := config{
		ConfigFile: defaultConfigFile,
		LogDir:     defaultLogDir,
		DebugLevel: defaultLogLevel,
		Network:    defaultNetwork,
	}

	// Pre-parse the command line options to see if an alternative config
	// file or the version flag was specified.
	preCfg := cfg
	preParser := flags.NewParser(&preCfg, flags.HelpFlag)
	_, err := preParser.ParseArgs(args)
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) && e.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			printCommands(os.Stdout)
			return nil, nil, errShowInfo
		}
		return nil, nil, usageError(preParser, err)
	}

	// Show the version and exit if the version flag was specified.
	appName := filepath.Base(os.Args[0])
	appName = strings.TrimSuffix(appName, filepath.Ext(appName))
	if preCfg.ShowVersion {
		fmt.Println(appName, "version", version.String())
		return nil, nil, errShowInfo
	}

	// Create the default config file from the sample when it does not
	// exist yet.  Failing to do so is not fatal.
	preCfg.ConfigFile = cleanAndExpandPath(preCfg.ConfigFile)
	if preCfg.ConfigFile == defaultConfigFile && !fileExists(defaultConfigFile) {
		err := createDefaultConfigFile(defaultConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating a default config "+
				"file: %v\n", err)
		}
	}

	// Load additional config from file.  A missing file is only an error
	// when it was named explicitly.
	parser := flags.NewParser(&cfg, flags.HelpFlag)
	err = flags.NewIniParser(parser).ParseFile(preCfg.ConfigFile)
	if err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) || preCfg.ConfigFile !=
			defaultConfigFile {

			str := "%s: failed to load config file: %w"
			err := fmt.Errorf(str, "loadConfig", err)
			return nil, nil, usageError(parser, err)
		}
	}

	// Parse command line options again to ensure they take precedence.
	remainingArgs, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, usageError(parser, err)
	}

	// Special show command to list supported subsystems and exit.
	if cfg.DebugLevel == "show" {
		fmt.Println("Supported subsystems", log.SupportedSubsystems())
		return nil, nil, errShowInfo
	}

	// Parse, validate, and set debug log level(s).
	if err := log.ParseAndSetDebugLevels(cfg.DebugLevel); err != nil {
		err := fmt.Errorf("%s: %w", "loadConfig", err)
		return nil, nil, usageError(parser, err)
	}

	// Resolve the network whose version bytes are used for addresses and
	// WIF keys.
	cfg.netParams, err = keys.NetParamsByName(cfg.Network)
	if err != nil {
		str := "%s: the specified network [%v] is invalid -- " +
			"supported networks [%s %s]"
		err := fmt.Errorf(str, "loadConfig", cfg.Network,
			keys.MainNetParams.Name, keys.TestNet3Params.Name)
		return nil, nil, usageError(parser, err)
	}

	// Initialize log rotation.  After log rotation has been initialized,
	// the logger variables may be used.
	if !cfg.NoFileLogging {
		cfg.LogDir = cleanAndExpandPath(cfg.LogDir)
		logFile := filepath.Join(cfg.LogDir, cfg.netParams.Name,
			defaultLogFilename)
		if err := log.InitLogRotator(logFile); err != nil {
			err := fmt.Errorf("%s: %w", "loadConfig", err)
			return nil, nil, usageError(parser, err)
		}
	}

	if len(remainingArgs) == 0 {
		err := fmt.Errorf("%s: no command specified", "loadConfig")
		fmt.Fprintln(os.Stderr, err)
		printCommands(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
