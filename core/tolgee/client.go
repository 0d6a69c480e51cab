// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package tolgee fetches translation dictionaries from the Tolgee REST API.

Only one endpoint is used:

	GET {api_url}/v2/projects/{project_id}/translations/{locale}
	Accept: application/json
	X-API-Key: {api_key}

The response is a JSON object keyed by locale whose value is the nested
translation tree for that locale.
*/
package tolgee

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"codeberg.org/pixivfe/tolgeefe/core/audit"
	"codeberg.org/pixivfe/tolgeefe/core/dict"
)

const (
	// DefaultTimeout bounds a single fetch when Config.Timeout is zero.
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response body is read.
	maxBodySize = 16 << 20

	apiKeyHeader = "X-API-Key"
)

var (
	errAPIResponseError = errors.New("Tolgee API responded with an error")

	// ErrInvalidJSON is returned when the response body is not valid JSON.
	ErrInvalidJSON = errors.New("Tolgee response contained invalid JSON")

	// ErrLocaleMissing is returned when the response has no object for the requested locale.
	ErrLocaleMissing = errors.New("Tolgee response does not contain the requested locale")

	// ErrNotConfigured is returned when the API URL or project id is empty.
	ErrNotConfigured = errors.New("Tolgee API URL and project id are required")
)

// APIError is a non-2xx response from the Tolgee API.
type APIError struct {
	// StatusCode is the HTTP status code from the response.
	StatusCode int

	// Message is taken from the JSON "message" or "code" field, falling back to the status text.
	Message string

	Err error
}

// Error returns a formatted error message including the status code.
func (e *APIError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	fmt.Fprintf(&b, " (status code: %d)", e.StatusCode)

	return b.String()
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Config holds the Tolgee connection settings.
type Config struct {
	APIURL    string
	APIKey    string
	ProjectID string
	Timeout   time.Duration
}

// Client talks to one Tolgee project.
type Client struct {
	cfg  Config
	http *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// NewClient returns a Client for cfg.
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS12},
				Proxy:           http.ProxyFromEnvironment,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// TranslationsURL returns the endpoint URL for locale.
func (c *Client) TranslationsURL(locale string) string {
	return c.cfg.APIURL + "/v2/projects/" + url.PathEscape(c.cfg.ProjectID) + "/translations/" + url.PathEscape(locale)
}

// FetchTranslations performs a single GET for locale and returns its dictionary.
//
// The request is bounded by the configured timeout. No retry is attempted.
func (c *Client) FetchTranslations(ctx context.Context, locale string) (dict.Namespace, error) {
	if c.cfg.APIURL == "" || c.cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := c.get(ctx, c.TranslationsURL(locale), locale)
	if err != nil {
		return nil, err
	}

	return extractLocale(body, locale)
}

// get issues a GET for target inside an audit span and returns the body of
// a 2xx response. The request is built from the span's context so that it
// belongs to the span's trace task.
func (c *Client) get(ctx context.Context, target, locale string) (_ []byte, err error) {
	span := audit.Span{
		Destination: audit.ToTolgee,
		RequestID:   audit.NewRequestID(),
		Method:      http.MethodGet,
		URL:         target,
		Locale:      locale,
	}

	defer func() {
		span.Error = err
		span.End()
		span.Log()
	}()

	ctx = span.Begin(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.Size = len(body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := gjson.GetBytes(body, "message").String()
		if message == "" {
			message = gjson.GetBytes(body, "code").String()
		}

		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}

		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Err:        errAPIResponseError,
		}
	}

	return body, nil
}

// extractLocale finds the object stored under the locale key of body.
//
// The key is matched exactly rather than through a gjson path because
// locales may contain characters that are significant in path syntax.
func extractLocale(body []byte, locale string) (dict.Namespace, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: %q", ErrLocaleMissing, locale)
	}

	var found gjson.Result

	root.ForEach(func(key, value gjson.Result) bool {
		if key.String() == locale {
			found = value

			return false
		}

		return true
	})

	if !found.IsObject() {
		return nil, fmt.Errorf("%w: %q", ErrLocaleMissing, locale)
	}

	return dict.FromJSON(found), nil
}
