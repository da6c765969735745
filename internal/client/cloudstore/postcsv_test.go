package cloudstore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRows = []models.Row{
	{"2024-01-01", "Reef", "Alice", true, "45"},
	{"2024-01-01", "Reef", "Bob", false, "40"},
}

func TestPostCSV_CanUpload(t *testing.T) {
	assert.True(t, NewPostCSV(ParseKey("postcsv|https://example.com/upload"), Options{}).CanUpload())
	assert.False(t, NewPostCSV(ParseKey("postcsv"), Options{}).CanUpload())
	assert.False(t, NewPostCSV(nil, Options{}).CanUpload())
}

func TestPostCSV_Upload_PostsBatchAsCSV(t *testing.T) {
	var gotBody string
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewPostCSV(ParseKey("postcsv|"+srv.URL), Options{HTTPClient: srv.Client()})

	require.NoError(t, s.Upload(context.Background(), testRows))
	assert.Equal(t, "2024-01-01,Reef,Alice,true,45\n2024-01-01,Reef,Bob,false,40\n", gotBody)
	assert.Equal(t, "text/csv; charset=UTF-8", gotContentType)
}

func TestPostCSV_Upload_InlineCredentialsBecomeBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	var gotOK bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		// Credentials must not leak into the request target.
		assert.NotContains(t, r.URL.String(), "brain")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := "postcsv|http://brain:freeze@" + srv.Listener.Addr().String() + "/upload"
	s := NewPostCSV(ParseKey(u), Options{HTTPClient: srv.Client()})

	require.NoError(t, s.Upload(context.Background(), testRows))
	require.True(t, gotOK)
	assert.Equal(t, "brain", gotUser)
	assert.Equal(t, "freeze", gotPass)
}

func TestPostCSV_Upload_Non2xxIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewPostCSV(ParseKey("postcsv|"+srv.URL), Options{HTTPClient: srv.Client()})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrTransportFailure)
}

func TestPostCSV_Upload_401IsAuthFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewPostCSV(ParseKey("postcsv|"+srv.URL), Options{HTTPClient: srv.Client()})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrAuthFailure)
}

func TestPostCSV_Upload_ConnectionRefused(t *testing.T) {
	s := NewPostCSV(ParseKey("postcsv|http://127.0.0.1:1/upload"), Options{})

	err := s.Upload(context.Background(), testRows)
	assert.ErrorIs(t, err, common.ErrTransportFailure)
}
