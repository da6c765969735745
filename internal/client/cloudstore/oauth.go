package cloudstore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2"
)

const spreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// ConsentTokenSource obtains an access token through the user-consent flow:
// the user opens the printed URL, grants access, and pastes the code back.
// The token is cached until it expires.
type ConsentTokenSource struct {
	cfg *oauth2.Config
	in  *bufio.Reader
	out io.Writer
	tok *oauth2.Token
}

func NewConsentTokenSource(clientID string, in *bufio.Reader, out io.Writer) *ConsentTokenSource {
	return &ConsentTokenSource{
		cfg: &oauth2.Config{
			ClientID: clientID,
			Scopes:   []string{spreadsheetsScope},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.google.com/o/oauth2/auth",
				TokenURL: "https://oauth2.googleapis.com/token",
			},
			RedirectURL: "urn:ietf:wg:oauth:2.0:oob",
		},
		in:  in,
		out: out,
	}
}

func (c *ConsentTokenSource) Token(ctx context.Context) (string, error) {
	if c.tok.Valid() {
		return c.tok.AccessToken, nil
	}

	authURL := c.cfg.AuthCodeURL("state", oauth2.AccessTypeOnline)
	if _, err := fmt.Fprintf(c.out, "Open this URL in your browser, grant access, then paste the code:\n%s\n> ", authURL); err != nil {
		return "", err
	}

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	code := strings.TrimSpace(line)
	if code == "" {
		return "", fmt.Errorf("no authorization code entered")
	}

	tok, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("code exchange failed: %w", err)
	}
	c.tok = tok
	return tok.AccessToken, nil
}
