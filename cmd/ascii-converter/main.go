// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ascii-converter CLI. The commands
// bind flags and configuration to the conversion client; all validation and
// request shaping lives in internal/.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/internal/logging"
	"github.com/pdiddy/ascii-converter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// logger is built in PersistentPreRunE once --verbose is known.
var logger = zap.NewNop()

// rootCmd is the base command for the ascii-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "ascii-converter",
	Short: "Turn images into ASCII art through the conversion service",
	Long: `ascii-converter sends an image to the ASCII art conversion service and
prints the text it returns. Images come from a local file, a URL, or one of
the built-in samples.

The service base URL, API key, feature flags and limits are read from
ascii-converter.yaml, a .env file, ASCII_CONVERTER_* environment variables,
and .secrets/ascii-api-key.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = logging.New(verbose)

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", zap.Strings("keys", keys))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ascii-converter.yaml or ~/.config/ascii-converter/config.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "conversion service base URL")
	rootCmd.PersistentFlags().Bool("local", false, "use the local development service ("+localURLHint+")")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log requests and responses to stderr")

	viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ascii-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ascii-converter"))
		}
	}

	configureViper(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", apperr.UserMessage(err))
		os.Exit(1)
	}
}
