package cloudstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/cdot/divelog/internal/client/models"
	"github.com/cdot/divelog/internal/common"
)

// PostCSV uploads a batch as one CSV POST to a stored endpoint.
//
// Key fields: 1 = endpoint URL. Inline "user:password" credentials in the
// URL are moved into a Basic-Auth header and never sent in the request line.
type PostCSV struct {
	key    Key
	client *http.Client
}

func NewPostCSV(key Key, opts Options) *PostCSV {
	return &PostCSV{key: key, client: opts.httpClient()}
}

func (s *PostCSV) CanUpload() bool {
	return s.key.Field(1) != ""
}

func (s *PostCSV) Upload(ctx context.Context, rows []models.Row) error {
	body, err := MarshalCSV(rows)
	if err != nil {
		return err
	}

	u, err := url.Parse(s.key.Field(1))
	if err != nil {
		return fmt.Errorf("%w: bad endpoint url: %v", common.ErrTransportFailure, err)
	}

	var user *url.Userinfo
	if u.User != nil {
		user = u.User
		u.User = nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransportFailure, err)
	}
	req.Header.Set("Content-Type", "text/csv; charset=UTF-8")
	if user != nil {
		password, _ := user.Password()
		req.SetBasicAuth(user.Username(), password)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: endpoint returned %s", common.ErrAuthFailure, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: endpoint returned %s", common.ErrTransportFailure, resp.Status)
	}
	return nil
}
