// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ImagePayload is an image ready to be sent to the conversion service.
// Data holds the base64 (standard encoding, no data-URL prefix) form of the
// original bytes.
type ImagePayload struct {
	// Name describes where the image came from, e.g. "cat.png",
	// "Image from URL" or "Sample: gradient".
	Name string `json:"name" yaml:"name"`

	// Data is the base64-encoded image.
	Data string `json:"data" yaml:"-"`

	// MIMEType is the detected content type, e.g. "image/png".
	MIMEType string `json:"mime_type" yaml:"mime_type"`

	// Size is the decoded size in bytes.
	Size int64 `json:"size" yaml:"size"`

	// Width and Height are the pixel dimensions from the image header.
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// IsEmpty reports whether the payload carries no image data.
func (p ImagePayload) IsEmpty() bool {
	return p.Data == ""
}
