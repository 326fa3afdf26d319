package types

import "time"

// Defaults for ClientConfig. Zero values in a loaded config fall back to these.
const (
	DefaultAPIURL      = "https://ottoproject-image-ascii-api-rirafu7rda-an.a.run.app"
	LocalAPIURL        = "http://localhost:8004"
	DefaultCORSRelay   = "https://corsproxy.io/?"
	DefaultMinWidth    = 20
	DefaultMaxWidth    = 200
	DefaultWidth       = 80
	DefaultMaxFileSize = 5 * 1024 * 1024
	DefaultTimeout     = 60 * time.Second
	DefaultUserAgent   = "ascii-converter/0.1"
)

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ascii-converter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// FeatureFlags toggles optional client behavior.
type FeatureFlags struct {
	// ColoredOutput allows the colored option to reach the service. When
	// false, requests always carry colored=false.
	ColoredOutput bool `json:"enable_colored_output" yaml:"enable_colored_output" mapstructure:"enable_colored_output"`

	// FileUpload allows images to be loaded from local files.
	FileUpload bool `json:"enable_file_upload" yaml:"enable_file_upload" mapstructure:"enable_file_upload"`

	// URLConvert allows images to be loaded from remote URLs.
	URLConvert bool `json:"enable_url_convert" yaml:"enable_url_convert" mapstructure:"enable_url_convert"`

	// Samples allows synthetic sample images.
	Samples bool `json:"samples_enabled" yaml:"samples_enabled" mapstructure:"samples_enabled"`
}

// Limits bounds user input before it is sent to the service.
type Limits struct {
	MinWidth     int   `json:"min_width" yaml:"min_width" mapstructure:"min_width"`
	MaxWidth     int   `json:"max_width" yaml:"max_width" mapstructure:"max_width"`
	DefaultWidth int   `json:"default_width" yaml:"default_width" mapstructure:"default_width"`
	MaxFileSize  int64 `json:"max_file_size" yaml:"max_file_size" mapstructure:"max_file_size"`
}

// ClientConfig is the static configuration supplied before a conversion
// client is constructed.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// APIURL is the conversion service base URL, without a trailing slash.
	APIURL string `json:"api_url" yaml:"api_url" mapstructure:"api_url"`

	// APIKey authenticates against the non-public endpoints.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// UsePublicEndpoint selects /api/public/convert instead of /api/convert.
	UsePublicEndpoint bool `json:"use_public_endpoint" yaml:"use_public_endpoint" mapstructure:"use_public_endpoint"`

	// CORSRelay is the relay prefix for fetching non-local image URLs.
	CORSRelay string `json:"cors_relay" yaml:"cors_relay" mapstructure:"cors_relay"`

	Features FeatureFlags `json:"features" yaml:"features" mapstructure:"features"`
	Limits   Limits       `json:"limits" yaml:"limits" mapstructure:"limits"`
}

// DefaultClientConfig returns the configuration the client ships with.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		HTTPConfig: HTTPConfig{
			Timeout:   DefaultTimeout,
			UserAgent: DefaultUserAgent,
		},
		APIURL:            DefaultAPIURL,
		UsePublicEndpoint: true,
		CORSRelay:         DefaultCORSRelay,
		Features: FeatureFlags{
			ColoredOutput: true,
			FileUpload:    true,
			URLConvert:    false,
			Samples:       true,
		},
		Limits: Limits{
			MinWidth:     DefaultMinWidth,
			MaxWidth:     DefaultMaxWidth,
			DefaultWidth: DefaultWidth,
			MaxFileSize:  DefaultMaxFileSize,
		},
	}
}

// WithDefaults fills zero-valued numeric limits and strings from
// DefaultClientConfig. Boolean flags are left as given.
func (c ClientConfig) WithDefaults() ClientConfig {
	d := DefaultClientConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	if c.APIURL == "" {
		c.APIURL = d.APIURL
	}
	if c.CORSRelay == "" {
		c.CORSRelay = d.CORSRelay
	}
	if c.Limits.MinWidth <= 0 {
		c.Limits.MinWidth = d.Limits.MinWidth
	}
	if c.Limits.MaxWidth <= 0 {
		c.Limits.MaxWidth = d.Limits.MaxWidth
	}
	if c.Limits.DefaultWidth <= 0 {
		c.Limits.DefaultWidth = d.Limits.DefaultWidth
	}
	if c.Limits.MaxFileSize <= 0 {
		c.Limits.MaxFileSize = d.Limits.MaxFileSize
	}
	return c
}
