// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/paybullion/keycore/internal/log"
)

// interruptSignals defines the default signals to catch in order to do a proper
// shutdown.  This may be modified during init depending on the platform.
var interruptSignals = []os.Signal{os.Interrupt}

// interruptListener listens for OS signals such as SIGINT (Ctrl+C) and
// returns a context that is canceled when one is received, when the parent
// is done or when the returned cancel function is called.  A running key
// derivation observes the cancellation at its next progress point.
func interruptListener(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)
		defer signal.Stop(interruptChannel)

		select {
		case sig := <-interruptChannel:
			log.KtolLog.Infof("Received signal (%s).  Canceling...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// interruptRequested returns true when the context returned by
// interruptListener was canceled.  This simplifies early shutdown slightly
// since the caller can just use an if statement instead of a select.
func interruptRequested(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
