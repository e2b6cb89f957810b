package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avetrov/userdeck/internal/client/models"
	"github.com/avetrov/userdeck/internal/logging"
)

const requestIDHeader = "X-Request-Id"

// HTTPClient is the JSON-over-HTTP implementation of Client.
//
// The bearer credential is not cached: it is read from the CredentialSource
// on every call, so a login or logout in another component is picked up
// immediately.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	timeout time.Duration
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, creds CredentialSource, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		timeout: timeout,
		log:     log.With("component", "gateway"),
	}
}

// Close releases idle transport connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userListResponse struct {
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Data       []models.User `json:"data"`
}

type userResponse struct {
	Data models.User `json:"data"`
}

// Authenticate exchanges credentials for an opaque token. Rejected
// credentials surface as ErrInvalidCredentials.
func (c *HTTPClient) Authenticate(ctx context.Context, email string, password string) (string, error) {
	var resp loginResponse
	status, err := c.do(ctx, http.MethodPost, "/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	switch {
	case status == http.StatusOK:
		return resp.Token, nil
	case status == http.StatusBadRequest || status == http.StatusUnauthorized:
		return "", ErrInvalidCredentials
	default:
		return "", c.statusError(status)
	}
}

// ListPage fetches one page of the collection. Pages are 1-based.
func (c *HTTPClient) ListPage(ctx context.Context, page int) (*models.UserPage, error) {
	if page < 1 {
		return nil, fmt.Errorf("page must be >= 1, got %d", page)
	}

	var resp userListResponse
	q := url.Values{"page": []string{fmt.Sprintf("%d", page)}}
	status, err := c.do(ctx, http.MethodGet, "/users", q, nil, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError(status)
	}
	return &models.UserPage{Items: resp.Data, TotalPages: resp.TotalPages}, nil
}

// GetOne fetches a single record by ID.
func (c *HTTPClient) GetOne(ctx context.Context, id int64) (*models.User, error) {
	var resp userResponse
	status, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError(status)
	}
	return &resp.Data, nil
}

// Update sends the set fields of the patch and returns the updated record.
// The server echoes only the mutable fields, so identity is restored from
// the argument.
func (c *HTTPClient) Update(ctx context.Context, id int64, patch models.UserPatch) (*models.User, error) {
	var updated models.User
	status, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), nil, patch, &updated)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, c.statusError(status)
	}
	updated.ID = id
	return &updated, nil
}

// Remove deletes a record by ID. The backend answers 204 with no body.
func (c *HTTPClient) Remove(ctx context.Context, id int64) error {
	status, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent && status != http.StatusOK {
		return c.statusError(status)
	}
	return nil
}

// do executes one request and decodes the body into out (when out is non-nil
// and the response carries a body). It returns the HTTP status so callers can
// apply operation-specific mappings; transport-level failures come back as
// ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method string, path string, query url.Values, body any, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	credential, err := c.creds.Credential(ctx)
	if err != nil {
		return 0, fmt.Errorf("read credential: %w", err)
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return 0, ErrUnavailable
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if out != nil && resp.StatusCode < http.StatusMultipleChoices && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// statusError maps a non-success HTTP status to a sentinel error.
func (c *HTTPClient) statusError(status int) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		if status >= http.StatusInternalServerError {
			return ErrUnavailable
		}
		return fmt.Errorf("unexpected status %d", status)
	}
}
