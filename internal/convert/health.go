// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pdiddy/ascii-converter/internal/httputil"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// Health status messages.
const (
	MsgOnline      = "API Connected"
	MsgUnavailable = "API Unavailable"
	MsgUnreachable = "Cannot reach API"
)

// Health probes the service once. Any 2xx answer is online; anything else,
// including transport failures, is offline. It never returns an error and
// its outcome does not affect Convert.
func (c *Client) Health(ctx context.Context) types.HealthReport {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(PathHealth), nil)
	if err != nil {
		c.logger.Debug("health request not built", zap.Error(err))
		return types.HealthReport{Status: types.StatusOffline, Message: MsgUnreachable}
	}
	httputil.SetUserAgent(req, c.cfg.UserAgent)
	if c.cfg.APIKey != "" {
		req.Header.Set("X-API-Key", c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("health probe failed", zap.Error(err))
		return types.HealthReport{Status: types.StatusOffline, Message: MsgUnreachable}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if !httputil.IsSuccess(resp.StatusCode) {
		c.logger.Debug("health probe rejected", zap.Int("status", resp.StatusCode))
		return types.HealthReport{Status: types.StatusOffline, Message: MsgUnavailable}
	}
	return types.HealthReport{Status: types.StatusOnline, Message: MsgOnline}
}
