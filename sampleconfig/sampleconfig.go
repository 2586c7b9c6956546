// Copyright (c) 2017 The Decred developers
// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package sampleconfig

// FileContents is a string containing the commented example config for
// keytool.
const FileContents = `[Application Options]

; ------------------------------------------------------------------------------
; Network settings
; ------------------------------------------------------------------------------

; The network whose version bytes are used for addresses and WIF private keys.
; Valid values are mainnet and testnet3.  The default is mainnet.
; network=testnet3


; ------------------------------------------------------------------------------
; Key derivation
; ------------------------------------------------------------------------------

; Do not print the progress of the password based key derivation, which takes
; a few seconds for every decrypt and encrypt.
; quiet=1

; The password used for decrypt and encrypt.  When unset the password is read
; without echo from the terminal, or from the first line of standard input when
; it is not a terminal.  Storing a password here is not recommended.
; password=


; ------------------------------------------------------------------------------
; Message verification
; ------------------------------------------------------------------------------

; The number of parsed public keys kept while verifying many messages.  The
; default is 256.
; pubkeycachesize=256


; ------------------------------------------------------------------------------
; Debug
; ------------------------------------------------------------------------------

; Debug logging level.
; Valid levels are {trace, debug, info, warn, error, critical}
; You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set
; log level for individual subsystems.  Use keytool --debuglevel=show to list
; available subsystems.
; debuglevel=info

; The directory to store log files.  The default is ~/.keytool/logs on POSIX
; OSes, $LOCALAPPDATA/Keytool/logs on Windows, and
; ~/Library/Application Support/Keytool/logs on macOS.
; logdir=~/.keytool/logs

; Disable writing log files.
; nofilelogging=1
`
