package cloudstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/common"
)

const (
	sheetsAPIBase = "https://sheets.googleapis.com"

	// sheetsRange is the named range rows are appended to.
	sheetsRange = "Dives"
)

// Sheets appends a batch as new rows of a remote spreadsheet.
//
// Key fields: 1 = OAuth client id, 2 = spreadsheet id. A short-lived access
// token is obtained per upload attempt via the configured TokenSource.
type Sheets struct {
	key     Key
	tokens  TokenSource
	client  *http.Client
	baseURL string
}

func NewSheets(key Key, opts Options) *Sheets {
	tokens := opts.Tokens
	if tokens == nil {
		tokens = NewConsentTokenSource(key.Field(1), opts.in(), opts.out())
	}
	baseURL := opts.SheetsBaseURL
	if baseURL == "" {
		baseURL = sheetsAPIBase
	}
	return &Sheets{key: key, tokens: tokens, client: opts.httpClient(), baseURL: baseURL}
}

func (s *Sheets) CanUpload() bool {
	return s.key.Field(1) != "" && s.key.Field(2) != ""
}

func (s *Sheets) Upload(ctx context.Context, rows []models.Row) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrAuthFailure, err)
	}

	payload, err := json.Marshal(map[string]any{"values": rows})
	if err != nil {
		return fmt.Errorf("failed to serialize batch: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s:append?valueInputOption=RAW",
		s.baseURL, url.PathEscape(s.key.Field(2)), url.PathEscape(sheetsRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransportFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: sheets api returned %s", common.ErrAuthFailure, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: sheets api returned %s", common.ErrTransportFailure, resp.Status)
	}
	return nil
}
