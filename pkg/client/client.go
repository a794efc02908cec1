// Package client is the Go client for the ThSL translation API. It is used
// by the thslctl CLI and is importable by external services.
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

	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const maxResponseBytes = 4 << 20

// Client talks to one ThSL API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, apperrors.New(apperrors.ErrCodeValidation, "server address is required")
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TranslateRequest is the POST /api/v1/translate body.
type TranslateRequest struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords,omitempty"`
}

// Token is one resolved sign gloss.
type Token struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	AssetRef string `json:"asset_ref"`
}

// TranslateResponse is the translation result.
type TranslateResponse struct {
	RequestID     string   `json:"requestId"`
	Tokens        []Token  `json:"tokens"`
	NotFound      []string `json:"notFound"`
	RuleID        string   `json:"ruleId,omitempty"`
	LowConfidence bool     `json:"lowConfidence"`
}

// ResolveEntry is one dictionary candidate for a resolved word.
type ResolveEntry struct {
	Category      string `json:"category"`
	AssetRef      string `json:"asset_ref"`
	PoseURL       string `json:"pose_url,omitempty"`
	PoseAvailable bool   `json:"pose_available"`
}

// ResolveResponse is the GET /api/v1/resolve result.
type ResolveResponse struct {
	Word    string         `json:"word"`
	Found   bool           `json:"found"`
	Entries []ResolveEntry `json:"entries"`
}

// PoseMeta locates the frame payload inside a pose file.
type PoseMeta struct {
	Name       string `json:"name"`
	Offset     int64  `json:"offset"`
	Frames     int64  `json:"frames"`
	Landmarks  int    `json:"landmarks"`
	Pad        int    `json:"pad"`
	Size       int64  `json:"size"`
	FrameBytes int64  `json:"frame_bytes"`
}

// Translate submits one translation request.
func (c *Client) Translate(ctx context.Context, req *TranslateRequest) (*TranslateResponse, error) {
	var out TranslateResponse
	if err := c.post(ctx, "/api/v1/translate", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Resolve looks up one word.
func (c *Client) Resolve(ctx context.Context, word string) (*ResolveResponse, error) {
	var out ResolveResponse
	path := "/api/v1/resolve?word=" + url.QueryEscape(word)
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PoseMeta fetches the frame metadata for a pose file.
func (c *Client) PoseMeta(ctx context.Context, name string) (*PoseMeta, error) {
	var out PoseMeta
	path := "/api/v1/poses/" + url.PathEscape(name) + "/meta"
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health probes the server's readiness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/readyz", nil)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "failed to build request")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "server unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeExternalService, "failed to read response")
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeSerialization, "malformed response body")
	}
	return nil
}

// decodeError rebuilds an AppError from the server's error body so callers
// can match on codes the same way they do in-process.
func decodeError(status int, data []byte) error {
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Code != "" {
		appErr := apperrors.New(apperrors.ErrorCode(body.Code), body.Message)
		if body.Detail != "" {
			appErr = appErr.WithDetail("%s", body.Detail)
		}
		return appErr
	}
	return apperrors.New(apperrors.ErrCodeExternalService, fmt.Sprintf("server returned status %d", status))
}
