package cloudstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cdot/divelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) Token(ctx context.Context) (string, error) {
	return s.token, s.err
}

func TestSheets_CanUpload(t *testing.T) {
	assert.True(t, NewSheets(ParseKey("sheets|cid|sid"), Options{Tokens: stubTokens{}}).CanUpload())
	assert.False(t, NewSheets(ParseKey("sheets|cid"), Options{Tokens: stubTokens{}}).CanUpload())
	assert.False(t, NewSheets(ParseKey("sheets"), Options{Tokens: stubTokens{}}).CanUpload())
}

func TestSheets_Upload_AppendsBatch(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSheets(ParseKey("sheets|cid|sheet-42"), Options{
		Tokens:        stubTokens{token: "tok-123"},
		HTTPClient:    srv.Client(),
		SheetsBaseURL: srv.URL,
	})

	require.NoError(t, s.Upload(context.Background(), testRows))

	assert.Equal(t, "/v4/spreadsheets/sheet-42/values/Dives:append", gotPath)
	assert.Equal(t, "valueInputOption=RAW", gotQuery)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	var payload struct {
		Values [][]any `json:"values"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &payload))
	require.Len(t, payload.Values, 2)
	assert.Equal(t, []any{"2024-01-01", "Reef", "Alice", true, "45"}, payload.Values[0])
}

func TestSheets_Upload_TokenFailureIsAuthFailure(t *testing.T) {
	s := NewSheets(ParseKey("sheets|cid|sid"), Options{
		Tokens: stubTokens{err: errors.New("consent denied")},
	})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrAuthFailure)
}

func TestSheets_Upload_APIRejectionIsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewSheets(ParseKey("sheets|cid|sid"), Options{
		Tokens:        stubTokens{token: "tok"},
		HTTPClient:    srv.Client(),
		SheetsBaseURL: srv.URL,
	})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrAuthFailure)
}

func TestSheets_Upload_ServerErrorIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSheets(ParseKey("sheets|cid|sid"), Options{
		Tokens:        stubTokens{token: "tok"},
		HTTPClient:    srv.Client(),
		SheetsBaseURL: srv.URL,
	})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrTransportFailure)
}
