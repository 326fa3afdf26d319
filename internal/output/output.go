// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output displays conversion results: the ASCII text, its metadata,
// clipboard copies, and download files.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

// MetadataFormat selects how WriteMetadata renders result metadata.
type MetadataFormat string

const (
	MetadataText MetadataFormat = "text"
	MetadataYAML MetadataFormat = "yaml"
	MetadataJSON MetadataFormat = "json"
	MetadataNone MetadataFormat = "none"
)

// clipboardWrite is swapped in tests; the real clipboard needs a display.
var clipboardWrite = clipboard.WriteAll

// Render writes the ASCII text exactly as the service returned it.
func Render(w io.Writer, result *types.ConversionResult) error {
	_, err := io.WriteString(w, result.ASCII)
	return err
}

// WriteMetadata writes the result metadata in the given format.
func WriteMetadata(w io.Writer, result *types.ConversionResult, format MetadataFormat) error {
	m := result.Metadata
	switch format {
	case MetadataText, "":
		fmt.Fprintln(w, "Image Details:")
		fmt.Fprintf(w, "Output: %d × %d characters\n", m.Width, m.Height)
		fmt.Fprintf(w, "Original: %d × %d pixels\n", m.OriginalWidth, m.OriginalHeight)
		fmt.Fprintf(w, "Character set: %s\n", m.Charset)
		if m.Colored {
			fmt.Fprintln(w, "Color: ANSI colors applied")
		}
		return nil
	case MetadataYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}
		return enc.Close()
	case MetadataJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case MetadataNone:
		return nil
	default:
		return fmt.Errorf("unsupported metadata format %q: use text, yaml, json, or none", format)
	}
}

// DownloadName is the file name used for a download made at now.
func DownloadName(now time.Time) string {
	return fmt.Sprintf("ascii-art-%d.txt", now.UnixMilli())
}

// Download writes the ASCII text to dir/ascii-art-<unix millis>.txt and
// returns the path written.
func Download(dir string, result *types.ConversionResult, now time.Time) (string, error) {
	if result == nil || result.ASCII == "" {
		return "", apperr.New(apperr.KindValidation, "download", "No ASCII art to download")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, DownloadName(now))
	if err := os.WriteFile(path, []byte(result.ASCII), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Copy puts the ASCII text on the system clipboard.
func Copy(result *types.ConversionResult) error {
	if result == nil || result.ASCII == "" {
		return apperr.New(apperr.KindValidation, "copy", "No ASCII art to copy")
	}
	if err := clipboardWrite(result.ASCII); err != nil {
		return apperr.Wrap(apperr.KindValidation, "copy", "Failed to copy to clipboard", err)
	}
	return nil
}
