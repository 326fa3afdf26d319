// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ascii-converter/internal/imagesource"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [kind]",
	Short: "Write a built-in sample image to a PNG file",
	Long: `Sample renders one of the synthetic placeholder images used by
convert --sample and writes it as PNG. Use --list to see the kinds.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().String("out", "", "output file (default: <kind>.png)")
	sampleCmd.Flags().Bool("list", false, "list the available samples")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list"); list || len(args) == 0 {
		for _, k := range imagesource.SampleKinds() {
			fmt.Println(k)
		}
		return nil
	}

	cfg, err := clientConfig(cmd)
	if err != nil {
		return err
	}
	kind := imagesource.SampleKind(args[0])
	payload, err := imagesource.NewLoader(cfg, nil, logger).Sample(kind)
	if err != nil {
		return err
	}
	data, err := imagesource.Decode(payload)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = string(kind) + ".png"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Printf("%s: %d×%d PNG written to %s\n", payload.Name, payload.Width, payload.Height, out)
	return nil
}
