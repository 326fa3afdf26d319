// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ascii-converter/internal/convert"
	"github.com/pdiddy/ascii-converter/internal/httputil"
	"github.com/pdiddy/ascii-converter/internal/imagesource"
	"github.com/pdiddy/ascii-converter/internal/output"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an image to ASCII art",
	Long: `Convert loads one image (--file, --url, or --sample), validates it
locally, sends it to the conversion service once, and prints the returned
ASCII art to stdout. Metadata goes to stderr.

A health probe runs alongside image loading and reports the service status;
it never blocks the conversion.`,
	Example: `  ascii-converter convert --file cat.png --width 120
  ascii-converter convert --sample circle --charset blocks --invert
  ascii-converter convert --url https://example.com/cat.jpg --copy`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("file", "", "path to a local image")
	convertCmd.Flags().String("url", "", "URL of a remote image (requires features.enable_url_convert)")
	convertCmd.Flags().String("sample", "", "built-in sample: circle, gradient, logo, pattern, photo, text")
	convertCmd.Flags().Int("width", 0, "output width in characters (default from limits.default_width)")
	convertCmd.Flags().String("charset", types.DefaultCharset, "glyph ramp used by the service")
	convertCmd.Flags().Bool("invert", false, "invert brightness")
	convertCmd.Flags().Bool("colored", false, "request ANSI-colored output")
	convertCmd.Flags().Int("brightness", 0, "brightness adjustment")
	convertCmd.Flags().String("metadata", string(output.MetadataText), "metadata format: text, yaml, json, or none")
	convertCmd.Flags().Bool("copy", false, "copy the result to the clipboard")
	convertCmd.Flags().String("download", "", "also write the result to DIR/ascii-art-<timestamp>.txt")
	convertCmd.Flags().Bool("no-health", false, "skip the service health probe")

	convertCmd.MarkFlagsMutuallyExclusive("file", "url", "sample")

	rootCmd.AddCommand(convertCmd)
}

// imageSource is the one input selected on the command line.
type imageSource struct {
	file   string
	url    string
	sample string
}

func (s imageSource) load(ctx context.Context, l *imagesource.Loader) (types.ImagePayload, error) {
	switch {
	case s.file != "":
		return l.FromFile(s.file)
	case s.url != "":
		return l.FromURL(ctx, s.url)
	case s.sample != "":
		return l.Sample(imagesource.SampleKind(s.sample))
	default:
		return types.ImagePayload{}, nil
	}
}

func optionsFromFlags(cmd *cobra.Command) types.ConversionOptions {
	width, _ := cmd.Flags().GetInt("width")
	charset, _ := cmd.Flags().GetString("charset")
	invert, _ := cmd.Flags().GetBool("invert")
	colored, _ := cmd.Flags().GetBool("colored")
	brightness, _ := cmd.Flags().GetInt("brightness")
	return types.ConversionOptions{
		Width:      width,
		Charset:    charset,
		Invert:     invert,
		Colored:    colored,
		Brightness: brightness,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := clientConfig(cmd)
	if err != nil {
		return err
	}

	var src imageSource
	src.file, _ = cmd.Flags().GetString("file")
	src.url, _ = cmd.Flags().GetString("url")
	src.sample, _ = cmd.Flags().GetString("sample")
	noHealth, _ := cmd.Flags().GetBool("no-health")
	metaFormat, _ := cmd.Flags().GetString("metadata")
	doCopy, _ := cmd.Flags().GetBool("copy")
	downloadDir, _ := cmd.Flags().GetString("download")

	hc := httputil.NewClient(cfg.HTTPConfig)
	client := convert.New(cfg, hc, logger)
	loader := imagesource.NewLoader(cfg, hc, logger)

	result, err := convertOnce(cmd.Context(), client, loader, src, optionsFromFlags(cmd), !noHealth, os.Stderr)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	if err := output.Render(os.Stdout, result); err != nil {
		return err
	}
	if err := output.WriteMetadata(os.Stderr, result, output.MetadataFormat(metaFormat)); err != nil {
		return err
	}

	if doCopy {
		if err := output.Copy(result); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Copied!")
	}
	if downloadDir != "" {
		path, err := output.Download(downloadDir, result, time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Saved", path)
	}
	return nil
}

// convertOnce loads the image and, when probe is set, checks service health
// concurrently, then converts. The probe runs on ctx so a failed load does
// not cut it short. A suppressed concurrent conversion returns a nil result
// and no error.
func convertOnce(ctx context.Context, client *convert.Client, loader *imagesource.Loader, src imageSource, opts types.ConversionOptions, probe bool, status io.Writer) (*types.ConversionResult, error) {
	var report types.HealthReport

	var g errgroup.Group
	if probe {
		g.Go(func() error {
			report = client.Health(ctx)
			return nil
		})
	}
	g.Go(func() error {
		img, err := src.load(ctx, loader)
		if err != nil {
			return err
		}
		if !img.IsEmpty() {
			client.SetImage(img)
		}
		return nil
	})
	loadErr := g.Wait()

	if probe && report.Status != "" {
		fmt.Fprintf(status, "[%s] %s\n", report.Status, report.Message)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	result, err := client.Convert(ctx, opts)
	if errors.Is(err, convert.ErrBusy) {
		return nil, nil
	}
	return result, err
}
