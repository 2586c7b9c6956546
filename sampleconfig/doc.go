// Copyright (c) 2017 The Decred developers
// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package sampleconfig provides a single constant that contains the contents of
the sample configuration file for keytool.  It is written out as the default
configuration file the first time keytool runs so users can see every
available option.
*/
package sampleconfig
