// Copyright (c) 2026 The keycore developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/paybullion/keycore/bip38"
	"github.com/paybullion/keycore/ec"
	"github.com/paybullion/keycore/ecdsa"
	"github.com/paybullion/keycore/internal/log"
	"github.com/paybullion/keycore/keys"
	"github.com/paybullion/keycore/scrypt"
	"golang.org/x/term"
)

// errInvalidSignature is returned by the verification commands when at least
// one signature does not verify.
var errInvalidSignature = errors.New("signature verification failed")

// keytool holds the state shared by the commands of a single invocation.
type keytool struct {
	cfg    *config
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	cache  *ecdsa.PubKeyCache
}

func newKeytool(cfg *config, stdin io.Reader, stdout, stderr io.Writer) *keytool {
	return &keytool{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		cache:  ecdsa.NewPubKeyCache(ec.S256(), cfg.PubKeyCacheSize),
	}
}

type commandHandler func(ctx context.Context, k *keytool, args []string) error

type command struct {
	usage   string
	handler commandHandler
}

var commands = map[string]command{
	"detect": {
		usage:   "detect <key>...  report whether each argument is an encrypted key",
		handler: handleDetect,
	},
	"decrypt": {
		usage:   "decrypt <encryptedkey>  decrypt a key and print its address and WIF",
		handler: handleDecrypt,
	},
	"encrypt": {
		usage:   "encrypt <wif>  encrypt a WIF private key with a password",
		handler: handleEncrypt,
	},
	"verifymessage": {
		usage:   "verifymessage <pubkeyhex> <sighex> <message>  verify a signed message",
		handler: handleVerifyMessage,
	},
	"verifymessages": {
		usage:   "verifymessages  verify \"<pubkeyhex> <sighex> <message>\" lines read from stdin",
		handler: handleVerifyMessages,
	},
}

// printCommands writes the usage of every command to w.
func printCommands(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", commands[name].usage)
	}
}

// run dispatches args[0] to its command handler.
func (k *keytool) run(ctx context.Context, args []string) error {
	cmd, ok := commands[args[0]]
	if !ok {
		printCommands(k.stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
	return cmd.handler(ctx, k, args[1:])
}

// readPassword returns the configured password, or reads one without echo
// from a terminal, or reads the first line of a non-terminal stdin.
func (k *keytool) readPassword(prompt string) (string, error) {
	if k.cfg.Password != "" {
		return k.cfg.Password, nil
	}

	if f, ok := k.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(k.stderr, prompt)
		pass, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(k.stderr)
		if err != nil {
			return "", fmt.Errorf("unable to read password: %w", err)
		}
		return string(pass), nil
	}

	line, err := bufio.NewReader(k.stdin).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("unable to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// progress returns a function printing the derivation progress to stderr in
// whole percent steps, or nil when quiet.
func (k *keytool) progress() scrypt.ProgressFunc {
	if k.cfg.Quiet {
		return nil
	}
	last := -1
	return func(fraction float64) {
		pct := int(fraction * 100)
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(k.stderr, "\rDeriving key: %3d%%", pct)
		if pct == 100 {
			fmt.Fprintln(k.stderr)
		}
	}
}

func handleDetect(_ context.Context, k *keytool, args []string) error {
	if len(args) == 0 {
		return errors.New("detect: no keys specified")
	}
	for _, text := range args {
		kind := "not an encrypted key"
		if bip38.Detect(text) {
			p, _ := bip38.DecodePayload(text)
			kind = "encrypted key"
			if p.ECMultiplied {
				kind = "encrypted key (ec-multiplied, unsupported)"
			}
			if p.Compressed() {
				kind += ", compressed"
			}
		}
		fmt.Fprintf(k.stdout, "%s: %s\n", text, kind)
	}
	return nil
}

func handleDecrypt(ctx context.Context, k *keytool, args []string) error {
	if len(args) != 1 {
		return errors.New("decrypt: expected exactly one encrypted key")
	}
	key, err := bip38.Parse(args[0], k.cfg.netParams)
	if err != nil {
		return err
	}
	password, err := k.readPassword("Password: ")
	if err != nil {
		return err
	}

	log.KtolLog.Infof("Decrypting key for %s", k.cfg.netParams.Name)
	result, err := key.Decrypt(ctx, password, k.progress())
	if err != nil {
		if errors.Is(err, bip38.ErrCanceled) {
			fmt.Fprintln(k.stderr)
		}
		log.KtolLog.Debugf("Key is %v after decrypt", key.State())
		return err
	}

	fmt.Fprintf(k.stdout, "address: %s\n", result.Address)
	fmt.Fprintf(k.stdout, "wif: %s\n", result.WIF(k.cfg.netParams))
	return nil
}

func handleEncrypt(ctx context.Context, k *keytool, args []string) error {
	if len(args) != 1 {
		return errors.New("encrypt: expected exactly one WIF private key")
	}
	priv, compressed, err := keys.DecodeWIF(ec.S256(), args[0],
		k.cfg.netParams)
	if err != nil {
		return err
	}
	password, err := k.readPassword("Password: ")
	if err != nil {
		return err
	}

	encrypted, err := bip38.Encrypt(ctx, priv, password, compressed,
		k.cfg.netParams, k.progress())
	if err != nil {
		if errors.Is(err, bip38.ErrCanceled) {
			fmt.Fprintln(k.stderr)
		}
		return err
	}

	fmt.Fprintf(k.stdout, "address: %s\n",
		priv.PubKey(compressed).Address(k.cfg.netParams))
	fmt.Fprintf(k.stdout, "encrypted: %s\n", encrypted)
	return nil
}

// verifyHex verifies a message signature given hex encoded public key and
// signature bytes.
func (k *keytool) verifyHex(pubKeyHex, sigHex, msg string) (bool, error) {
	pubKey, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return false, fmt.Errorf("invalid public key hex: %w", err)
	}
	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, fmt.Errorf("invalid signature hex: %w", err)
	}
	return k.cache.VerifyMessage(msg, sig, pubKey), nil
}

func handleVerifyMessage(_ context.Context, k *keytool, args []string) error {
	if len(args) != 3 {
		return errors.New("verifymessage: expected <pubkeyhex> <sighex> " +
			"<message>")
	}
	valid, err := k.verifyHex(args[0], args[1], args[2])
	if err != nil {
		return err
	}
	fmt.Fprintf(k.stdout, "valid: %v\n", valid)
	if !valid {
		return errInvalidSignature
	}
	return nil
}

func handleVerifyMessages(ctx context.Context, k *keytool, args []string) error {
	if len(args) != 0 {
		return errors.New("verifymessages: input is read from stdin")
	}

	var failed int
	scanner := bufio.NewScanner(k.stdin)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		if interruptRequested(ctx) {
			return ctx.Err()
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, " ", 3)
		if len(fields) != 3 {
			return fmt.Errorf("line %d: expected <pubkeyhex> <sighex> "+
				"<message>", lineNum)
		}
		valid, err := k.verifyHex(fields[0], fields[1], fields[2])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if !valid {
			failed++
		}
		fmt.Fprintf(k.stdout, "%d: valid: %v\n", lineNum, valid)
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if failed > 0 {
		log.KtolLog.Debugf("%d signatures failed to verify", failed)
		return errInvalidSignature
	}
	return nil
}
