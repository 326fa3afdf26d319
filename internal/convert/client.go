// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the conversion client: local validation of the
// current image and options, one request to the conversion service, and
// normalization of the response envelope into a result or a classified error.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/internal/httputil"
	"github.com/pdiddy/ascii-converter/internal/logging"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// Service routes, relative to the configured base URL.
const (
	PathHealth        = "/api/health"
	PathConvert       = "/api/convert"
	PathPublicConvert = "/api/public/convert"
)

// FallbackServiceMessage is shown when the service reports failure without a message.
const FallbackServiceMessage = "Conversion failed"

// ErrBusy is returned by Convert while another conversion on the same client
// is outstanding. No request is made; callers treat it as a silent no-op.
var ErrBusy = errors.New("conversion already in progress")

// Client converts the current image through the remote service. It owns the
// current image and the in-progress flag; at most one conversion is in flight
// per Client. A Client is safe for concurrent use.
type Client struct {
	cfg       types.ClientConfig
	http      *http.Client
	logger    *zap.Logger
	requestID func() string

	mu    sync.Mutex
	image types.ImagePayload

	converting atomic.Bool
}

// New returns a Client. A nil httpClient gets one built from cfg.HTTPConfig;
// a nil logger discards diagnostics.
func New(cfg types.ClientConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	cfg = cfg.WithDefaults()
	if httpClient == nil {
		httpClient = httputil.NewClient(cfg.HTTPConfig)
	}
	return &Client{
		cfg:       cfg,
		http:      httpClient,
		logger:    logging.OrNop(logger),
		requestID: uuid.NewString,
	}
}

// Config returns the effective configuration.
func (c *Client) Config() types.ClientConfig {
	return c.cfg
}

// SetImage replaces the current image.
func (c *Client) SetImage(p types.ImagePayload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.image = p
}

// Image returns the current image; the zero value when none is set.
func (c *Client) Image() types.ImagePayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.image
}

// InProgress reports whether a conversion is outstanding.
func (c *Client) InProgress() bool {
	return c.converting.Load()
}

// Endpoint returns the conversion URL selected by the public-endpoint flag.
func (c *Client) Endpoint() string {
	path := PathConvert
	if c.cfg.UsePublicEndpoint {
		path = PathPublicConvert
	}
	return c.url(path)
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.cfg.APIURL, "/") + path
}

// Convert sends the current image with opts to the service and returns the
// service's result unmodified.
//
// Failures, all checked in this order:
//   - no current image: KindMissingInput, no request;
//   - another conversion outstanding: ErrBusy, no request;
//   - width outside the configured bounds: KindValidation, no request;
//   - transport failure or an unparseable body: KindConnection;
//   - a success=false envelope: KindService.
//
// The service is called exactly once and never retried. The in-progress flag
// is cleared on every return path.
func (c *Client) Convert(ctx context.Context, opts types.ConversionOptions) (*types.ConversionResult, error) {
	const op = "convert"

	img := c.Image()
	if img.IsEmpty() {
		return nil, apperr.New(apperr.KindMissingInput, op, "Please select an image first")
	}

	if !c.converting.CompareAndSwap(false, true) {
		c.logger.Debug("conversion suppressed, another is in flight")
		return nil, ErrBusy
	}
	defer c.converting.Store(false)

	opts, err := c.normalize(opts)
	if err != nil {
		return nil, err
	}

	reqID := c.requestID()
	log := c.logger.With(zap.String("request_id", reqID))

	body, err := json.Marshal(types.ConversionRequest{Image: img.Data, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := c.Endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, connectionError(op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	httputil.SetUserAgent(req, c.cfg.UserAgent)
	if !c.cfg.UsePublicEndpoint && c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	log.Debug("sending conversion",
		zap.String("endpoint", endpoint),
		zap.String("image", img.Name),
		zap.Int64("size", img.Size),
		zap.Int("width", opts.Width),
		zap.String("charset", opts.Charset),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("conversion transport failure", zap.Error(err))
		return nil, connectionError(op, err)
	}
	defer resp.Body.Close()

	envelope, err := decodeEnvelope(resp)
	if err != nil {
		log.Warn("unreadable conversion response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, connectionError(op, err)
	}

	if !envelope.Success {
		msg := FallbackServiceMessage
		if envelope.Error != nil && envelope.Error.Message != "" {
			msg = envelope.Error.Message
		}
		log.Info("service rejected conversion", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return nil, apperr.New(apperr.KindService, op, msg)
	}
	if envelope.Data == nil {
		return nil, apperr.New(apperr.KindService, op, FallbackServiceMessage)
	}

	log.Debug("conversion complete",
		zap.Int("cols", envelope.Data.Metadata.Width),
		zap.Int("rows", envelope.Data.Metadata.Height),
	)
	return envelope.Data, nil
}

// normalize applies defaults, the width bounds, and the colored-output gate.
func (c *Client) normalize(opts types.ConversionOptions) (types.ConversionOptions, error) {
	lim := c.cfg.Limits
	if opts.Width == 0 {
		opts.Width = lim.DefaultWidth
	}
	if opts.Width < lim.MinWidth || opts.Width > lim.MaxWidth {
		return opts, apperr.New(apperr.KindValidation, "convert",
			fmt.Sprintf("Width must be between %d and %d", lim.MinWidth, lim.MaxWidth))
	}
	if strings.TrimSpace(opts.Charset) == "" {
		opts.Charset = types.DefaultCharset
	}
	opts.Colored = opts.Colored && c.cfg.Features.ColoredOutput
	return opts, nil
}

// decodeEnvelope parses the response body. A body that does not parse is a
// transport-level failure; for non-2xx responses the status is reported
// instead of the parse error.
func decodeEnvelope(resp *http.Response) (*types.ConversionResponse, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var envelope types.ConversionResponse
	if err := json.Unmarshal(data, &envelope); err != nil {
		if !httputil.IsSuccess(resp.StatusCode) {
			return nil, fmt.Errorf("HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	return &envelope, nil
}

func connectionError(op string, err error) error {
	return apperr.Wrap(apperr.KindConnection, op, "Connection error: "+err.Error(), err)
}
