// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ascii-converter/internal/convert"
	"github.com/pdiddy/ascii-converter/internal/httputil"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check whether the conversion service is reachable",
	Long: `Health sends one GET to the service health endpoint and prints
online or offline. The result is informational and never changes the exit
status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := clientConfig(cmd)
		if err != nil {
			return err
		}
		client := convert.New(cfg, httputil.NewClient(cfg.HTTPConfig), logger)
		report := client.Health(cmd.Context())

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		fmt.Printf("%s: %s (%s)\n", report.Status, report.Message, cfg.APIURL)
		return nil
	},
}

func init() {
	healthCmd.Flags().Bool("json", false, "output the status as JSON")
	rootCmd.AddCommand(healthCmd)
}
