// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagesource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/internal/httputil"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// msgFetchRejected is shown when the image host or relay answers non-2xx.
const msgFetchRejected = "Failed to load image from URL"

// URLImageName is the payload name for images loaded from a URL.
const URLImageName = "Image from URL"

// ParseImageURL checks that raw is a well-formed absolute URL. http and https
// URLs must name a host; other schemes parse but cannot be fetched.
func ParseImageURL(raw string) (*url.URL, error) {
	const op = "parse url"
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperr.New(apperr.KindInvalidURL, op, "Please enter a valid image URL")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidURL, op, "Invalid URL format", err)
	}
	if !u.IsAbs() || (isHTTP(u) && u.Host == "") {
		return nil, apperr.New(apperr.KindInvalidURL, op, "Invalid URL format")
	}
	return u, nil
}

// RelayURL returns the address to fetch target from. Local targets are
// fetched directly; everything else is routed through relay with target
// query-escaped. An empty relay disables routing.
func RelayURL(target, relay string) string {
	if relay == "" || isLocal(target) {
		return target
	}
	return relay + url.QueryEscape(target)
}

func isHTTP(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}

func isLocal(target string) bool {
	return strings.HasPrefix(target, "http://localhost") || strings.HasPrefix(target, "https://localhost")
}

// FromURL validates rawURL, downloads it (through the CORS relay when the
// host is not local), and validates the body like an uploaded file.
// Malformed URLs fail with KindInvalidURL before any request is made;
// download failures fail with KindFetch.
func (l *Loader) FromURL(ctx context.Context, rawURL string) (types.ImagePayload, error) {
	const op = "fetch image"
	if !l.cfg.Features.URLConvert {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, op, "Loading images from a URL is disabled")
	}

	u, err := ParseImageURL(rawURL)
	if err != nil {
		return types.ImagePayload{}, err
	}

	if !isHTTP(u) {
		return types.ImagePayload{}, apperr.New(apperr.KindFetch, op,
			fmt.Sprintf("Failed to load image: unsupported protocol scheme %q", u.Scheme))
	}

	fetchURL := RelayURL(u.String(), l.cfg.CORSRelay)
	l.logger.Debug("fetching image", zap.String("url", u.Redacted()), zap.Bool("relayed", fetchURL != u.String()))

	data, err := l.download(ctx, fetchURL)
	if err != nil {
		if apperr.KindOf(err) != "" {
			return types.ImagePayload{}, err
		}
		return types.ImagePayload{}, apperr.Wrap(apperr.KindFetch, op, "Failed to load image: "+err.Error(), err)
	}

	return FromBytes(URLImageName, data, l.cfg.Limits.MaxFileSize)
}

// download reads at most MaxFileSize+1 bytes so an oversized body is
// detected without buffering all of it.
func (l *Loader) download(ctx context.Context, fetchURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httputil.SetUserAgent(req, l.cfg.UserAgent)
	req.Header.Set("Accept", "image/*")

	resp, err := httputil.DoWithRetry(ctx, l.client, req, 0, l.logger)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		l.logger.Debug("image fetch rejected", zap.Int("status", resp.StatusCode))
		return nil, apperr.New(apperr.KindFetch, "fetch image", "Failed to load image: "+msgFetchRejected)
	}

	limit := l.cfg.Limits.MaxFileSize
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, tooLarge("fetch image", limit)
	}
	return data, nil
}
