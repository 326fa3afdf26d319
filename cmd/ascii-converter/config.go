// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ascii-converter/internal/secrets"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

const localURLHint = types.LocalAPIURL

// configureViper registers every configuration key so that environment
// variables and Unmarshal see them even when no config file exists. api_url
// has no default here so an explicit value can be told apart from --local.
func configureViper(v *viper.Viper) {
	d := types.DefaultClientConfig()
	v.SetDefault("api_key", "")
	v.SetDefault("use_public_endpoint", d.UsePublicEndpoint)
	v.SetDefault("cors_relay", d.CORSRelay)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("features.enable_colored_output", d.Features.ColoredOutput)
	v.SetDefault("features.enable_file_upload", d.Features.FileUpload)
	v.SetDefault("features.enable_url_convert", d.Features.URLConvert)
	v.SetDefault("features.samples_enabled", d.Features.Samples)
	v.SetDefault("limits.min_width", d.Limits.MinWidth)
	v.SetDefault("limits.max_width", d.Limits.MaxWidth)
	v.SetDefault("limits.default_width", d.Limits.DefaultWidth)
	v.SetDefault("limits.max_file_size", d.Limits.MaxFileSize)

	v.SetEnvPrefix("ASCII_CONVERTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The static-site build injected a bare API_URL; honor it too.
	v.BindEnv("api_url", "ASCII_CONVERTER_API_URL", "API_URL")
}

// resolveClientConfig builds the client configuration from v, the --local
// flag, and loaded secrets. An explicit api_url wins over --local; a
// configured api_key wins over the secrets file.
func resolveClientConfig(v *viper.Viper, local bool, secretValues map[string]string) (types.ClientConfig, error) {
	var cfg types.ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ClientConfig{}, fmt.Errorf("reading configuration: %w", err)
	}

	if local && !v.IsSet("api_url") {
		cfg.APIURL = types.LocalAPIURL
	}
	if cfg.APIKey == "" {
		cfg.APIKey = secretValues[secrets.APIKeyFile]
	}

	cfg = cfg.WithDefaults()
	if cfg.Limits.MinWidth > cfg.Limits.MaxWidth {
		return types.ClientConfig{}, fmt.Errorf("limits.min_width (%d) exceeds limits.max_width (%d)",
			cfg.Limits.MinWidth, cfg.Limits.MaxWidth)
	}
	return cfg, nil
}

// clientConfig resolves the configuration for the running command.
func clientConfig(cmd *cobra.Command) (types.ClientConfig, error) {
	local, _ := cmd.Flags().GetBool("local")
	return resolveClientConfig(viper.GetViper(), local, loadedSecrets)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the configuration the client would run with, after
merging defaults, the config file, .env, environment variables, secrets and
flags. The API key is masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := clientConfig(cmd)
		if err != nil {
			return err
		}
		cfg.APIKey = secrets.Mask(cfg.APIKey)

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding configuration: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
