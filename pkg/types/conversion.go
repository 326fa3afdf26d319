// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the ascii-converter client:
// the image payload, conversion options and results, service status, and the
// static client configuration.
package types

// DefaultCharset is the glyph ramp used when none is selected.
const DefaultCharset = "standard"

// ConversionOptions are the rendering options sent with each conversion.
type ConversionOptions struct {
	// Width is the output width in characters.
	Width int `json:"width" yaml:"width"`

	// Charset names the glyph ramp used to map brightness to characters.
	Charset string `json:"charset" yaml:"charset"`

	// Invert swaps the light and dark ends of the ramp.
	Invert bool `json:"invert" yaml:"invert"`

	// Colored requests ANSI-colored output. Only honored when the colored
	// output feature is enabled.
	Colored bool `json:"colored" yaml:"colored"`

	// Brightness is an adjustment applied by the service before mapping.
	Brightness int `json:"brightness" yaml:"brightness"`
}

// ResultMetadata describes the dimensions and settings of a conversion.
type ResultMetadata struct {
	Width          int    `json:"width" yaml:"width"`
	Height         int    `json:"height" yaml:"height"`
	OriginalWidth  int    `json:"originalWidth" yaml:"original_width"`
	OriginalHeight int    `json:"originalHeight" yaml:"original_height"`
	Charset        string `json:"charset" yaml:"charset"`
	Colored        bool   `json:"colored" yaml:"colored"`
}

// ConversionResult is the service's rendering of an image.
type ConversionResult struct {
	// ASCII is the rendered text, displayed verbatim.
	ASCII string `json:"ascii" yaml:"ascii"`

	Metadata ResultMetadata `json:"metadata" yaml:"metadata"`
}

// ConversionRequest is the JSON body posted to the convert endpoints.
type ConversionRequest struct {
	Image   string            `json:"image"`
	Options ConversionOptions `json:"options"`
}

// ServiceErrorBody is the error member of a response envelope.
type ServiceErrorBody struct {
	Message string `json:"message"`
}

// ConversionResponse is the envelope returned by the convert endpoints.
type ConversionResponse struct {
	Success bool              `json:"success"`
	Data    *ConversionResult `json:"data,omitempty"`
	Error   *ServiceErrorBody `json:"error,omitempty"`
}
