// Package segmenter calls an external Thai word-segmentation service.
// Translation degrades to whitespace splitting when the service is
// down, so every failure here is survivable.
package segmenter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/thaisign/thsl-translate/internal/config"
	"github.com/thaisign/thsl-translate/internal/infrastructure/monitoring/logging"
	"github.com/thaisign/thsl-translate/internal/translate"
	apperrors "github.com/thaisign/thsl-translate/pkg/errors"
)

const maxResponseBytes = 1 << 20

type segmentRequest struct {
	Text   string `json:"text"`
	Engine string `json:"engine,omitempty"`
}

type segmentResponse struct {
	Words []string `json:"words"`
}

// Client implements translate.Segmenter over HTTP.
type Client struct {
	endpoint   string
	engine     string
	httpClient *http.Client
	logger     logging.Logger
}

var _ translate.Segmenter = (*Client)(nil)

func NewClient(cfg config.SegmenterConfig, log logging.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		engine:     cfg.Engine,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

func (c *Client) Segment(ctx context.Context, text string) ([]string, error) {
	body, err := json.Marshal(segmentRequest{Text: text, Engine: c.engine})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSerialization, "failed to marshal segment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSegmenterUnavailable, "failed to build segment request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSegmenterUnavailable, "segmenter request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.New(apperrors.ErrCodeSegmenterBadResponse, "segmenter returned unexpected status").
			WithDetail("status=%d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSegmenterBadResponse, "failed to read segmenter response")
	}

	var out segmentResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeSegmenterBadResponse, "failed to decode segmenter response")
	}
	c.logger.Debug("text segmented", logging.Int("words", len(out.Words)))
	return out.Words, nil
}

// Health probes the segmenter with a single-word request.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Segment(ctx, "ทดสอบ")
	return err
}
