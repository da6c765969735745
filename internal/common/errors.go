// Package common defines shared sentinel errors used across the logbook
// client and server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Upload-path errors. Each upload attempt fails with exactly one of
	// these (possibly wrapped with detail); none is ever swallowed.
	ErrNothingToUpload     = errors.New("nothing to upload")
	ErrBackendUnconfigured = errors.New("upload backend is not configured")
	ErrAuthFailure         = errors.New("authentication failed")
	ErrTransportFailure    = errors.New("transport failure")
	ErrUploadInProgress    = errors.New("an upload is already in progress")
	ErrUnknownBackend      = errors.New("unknown upload backend")
)
