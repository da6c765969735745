// Package keycodec implements the reversible XOR obfuscation used to ship
// shared ids inside distributed static content. It deters casual inspection
// of the artifact; it is not a security boundary ; anyone holding the
// passphrase recovers every token.
package keycodec

import (
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrEmptySecret = errors.New("secret must not be empty")

// Encode XORs each byte of the UTF-8 encoding of plaintext with the
// corresponding byte of the UTF-8 encoding of secret, cycling the secret
// when it is shorter, and base64-encodes the result.
func Encode(plaintext, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	tb := []byte(plaintext)
	kb := []byte(secret)
	eb := make([]byte, len(tb))
	for i, b := range tb {
		eb[i] = b ^ kb[i%len(kb)]
	}
	return base64.StdEncoding.EncodeToString(eb), nil
}

// Decode reverses Encode exactly: Decode(Encode(x, k), k) == x for every x
// and non-empty k.
func Decode(token, secret string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	eb, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	kb := []byte(secret)
	db := make([]byte, len(eb))
	for i, b := range eb {
		db[i] = b ^ kb[i%len(kb)]
	}
	return string(db), nil
}
