package keycodec

import "fmt"

// EncodeBundle obfuscates every value of a name→secret map under a single
// passphrase. The result is safe to write into a distributed artifact: names
// stay readable, values do not.
func EncodeBundle(ids map[string]string, passphrase string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for name, value := range ids {
		token, err := Encode(value, passphrase)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", name, err)
		}
		out[name] = token
	}
	return out, nil
}

// DecodeBundle recovers the plaintext values of an encoded bundle. The
// passphrase is distributed out-of-band.
func DecodeBundle(tokens map[string]string, passphrase string) (map[string]string, error) {
	out := make(map[string]string, len(tokens))
	for name, token := range tokens {
		value, err := Decode(token, passphrase)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", name, err)
		}
		out[name] = value
	}
	return out, nil
}
