// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagesource builds validated ImagePayloads from local files, raw
// bytes, remote URLs, and synthetic samples. Every source runs the same
// validation: a size limit, an image content type, and a decodable raster
// header.
package imagesource

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/internal/httputil"
	"github.com/pdiddy/ascii-converter/internal/logging"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// Loader produces ImagePayloads subject to the configured feature flags and
// limits.
type Loader struct {
	cfg    types.ClientConfig
	client *http.Client
	logger *zap.Logger
}

// NewLoader returns a Loader. A nil client gets one built from cfg.HTTPConfig.
func NewLoader(cfg types.ClientConfig, client *http.Client, logger *zap.Logger) *Loader {
	cfg = cfg.WithDefaults()
	if client == nil {
		client = httputil.NewClient(cfg.HTTPConfig)
	}
	return &Loader{cfg: cfg, client: client, logger: logging.OrNop(logger)}
}

// FromFile loads and validates the image at path. The size check uses the
// file's stat size so oversized files are rejected without being read.
func (l *Loader) FromFile(path string) (types.ImagePayload, error) {
	const op = "load file"
	if !l.cfg.Features.FileUpload {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, op, "File upload is disabled")
	}

	info, err := os.Stat(path)
	if err != nil {
		return types.ImagePayload{}, apperr.Wrap(apperr.KindValidation, op, fmt.Sprintf("Cannot open %s", path), err)
	}
	if info.IsDir() {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, op, "Please select an image file")
	}
	if info.Size() > l.cfg.Limits.MaxFileSize {
		return types.ImagePayload{}, tooLarge(op, l.cfg.Limits.MaxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.ImagePayload{}, apperr.Wrap(apperr.KindValidation, op, fmt.Sprintf("Cannot read %s", path), err)
	}

	p, err := FromBytes(filepath.Base(path), data, l.cfg.Limits.MaxFileSize)
	if err != nil {
		return types.ImagePayload{}, err
	}
	l.logger.Debug("loaded image file",
		zap.String("path", path),
		zap.String("mime_type", p.MIMEType),
		zap.Int64("size", p.Size),
	)
	return p, nil
}

// FromBytes validates data and encodes it as an ImagePayload named name.
// maxSize <= 0 disables the size check.
func FromBytes(name string, data []byte, maxSize int64) (types.ImagePayload, error) {
	const op = "validate image"
	if len(data) == 0 {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, op, "Image is empty")
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return types.ImagePayload{}, tooLarge(op, maxSize)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return types.ImagePayload{}, apperr.New(apperr.KindValidation, op, "Please select an image file")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return types.ImagePayload{}, apperr.Wrap(apperr.KindValidation, op,
			fmt.Sprintf("Unsupported image format: %s", mtype.String()), err)
	}

	mimeType := mtype.String()
	if format != "" && !strings.HasSuffix(mimeType, format) {
		mimeType = "image/" + format
	}

	return types.ImagePayload{
		Name:     name,
		Data:     base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
		Size:     int64(len(data)),
		Width:    cfg.Width,
		Height:   cfg.Height,
	}, nil
}

// Decode returns the raw bytes of a payload.
func Decode(p types.ImagePayload) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return data, nil
}

func tooLarge(op string, maxSize int64) error {
	return apperr.New(apperr.KindValidation, op, "File too large. Max size: "+formatMiB(maxSize)+"MB")
}

// formatMiB renders n bytes as mebibytes without trailing zeros ("5", "0.5").
func formatMiB(n int64) string {
	return strconv.FormatFloat(float64(n)/1024/1024, 'f', -1, 64)
}
