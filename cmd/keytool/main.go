// Command keytool obfuscates a name→secret JSON map for distribution.
//
// The input file holds plaintext ids, e.g.
//
//	{"backend": "postcsv", "auth": "...", "destination": "https://..."}
//
// Every value is obfuscated under a passphrase (readable names survive) and
// the result is written next to the input as <name>.enc.json. The logbook
// client imports the encoded bundle with its importkey command, prompting for
// the same passphrase.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/cdot/divelog/internal/keycodec"
)

func encodedName(in string) string {
	base := strings.TrimSuffix(in, ".json")
	return base + ".enc.json"
}

func readPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

func run() error {
	passphrase := flag.String("passphrase", "", "passphrase (prompted when omitted)")
	output := flag.String("o", "", "output file (defaults to <input>.enc.json)")
	flag.Parse()

	if flag.NArg() != 1 {
		return fmt.Errorf("usage: keytool [-passphrase pw] [-o output] <ids.json>")
	}
	input := flag.Arg(0)

	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	var ids map[string]string
	if err := json.Unmarshal(data, &ids); err != nil {
		return fmt.Errorf("bad ids file: %w", err)
	}

	pw := *passphrase
	if pw == "" {
		if pw, err = readPassphrase(); err != nil {
			return err
		}
	}

	tokens, err := keycodec.EncodeBundle(ids, pw)
	if err != nil {
		return err
	}

	out := *output
	if out == "" {
		out = encodedName(input)
	}
	encoded, err := json.MarshalIndent(tokens, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, append(encoded, '\n'), 0o600); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (%d ids)\n", out, len(tokens))
	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatalf("%v", err)
	}
}
