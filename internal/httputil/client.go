// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"

	"github.com/pdiddy/ascii-converter/pkg/types"
)

// NewClient returns an *http.Client honoring cfg.Timeout. The client layer
// enforces no timeout of its own beyond this one.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// IsSuccess reports whether code is a 2xx status.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}

// SetUserAgent sets the User-Agent header when ua is not empty.
func SetUserAgent(req *http.Request, ua string) {
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
}
