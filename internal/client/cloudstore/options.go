package cloudstore

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cdot/divelog/internal/logging"
)

// TokenSource supplies a short-lived access token for one upload attempt.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options carries the collaborators a variant may need. Zero values get
// sensible defaults.
type Options struct {
	// HTTPClient performs the upload round-trips of the HTTP variants.
	HTTPClient *http.Client

	// Tokens authenticates the sheets variant. When nil, an interactive
	// user-consent flow on In/Out is used.
	Tokens TokenSource

	// In and Out host interactive prompts (the consent flow).
	In  *bufio.Reader
	Out io.Writer

	Logger logging.Logger

	// SheetsBaseURL overrides the Sheets API endpoint, for tests.
	SheetsBaseURL string
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (o Options) in() *bufio.Reader {
	if o.In != nil {
		return o.In
	}
	return bufio.NewReader(os.Stdin)
}

func (o Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}
