// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// keytool detects, decrypts and creates password-protected private keys and
// verifies signed messages from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/paybullion/keycore/internal/log"
)

// keytoolMain is the real main function for keytool.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func keytoolMain() error {
	cfg, args, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	ctx, cancel := interruptListener(context.Background())
	defer cancel()

	k := newKeytool(cfg, os.Stdin, os.Stdout, os.Stderr)
	if err := k.run(ctx, args); err != nil {
		if !errors.Is(err, errInvalidSignature) {
			fmt.Fprintln(os.Stderr, err)
		}
		log.KtolLog.Debugf("Command %s failed: %v", args[0], err)
		return err
	}
	return nil
}

func main() {
	if err := keytoolMain(); err != nil {
		if errors.Is(err, errShowInfo) {
			os.Exit(0)
		}
		os.Exit(1)
	}
}
