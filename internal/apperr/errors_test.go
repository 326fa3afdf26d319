// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")

	err := Wrap(KindConnection, "convert", "Connection error: dial tcp: connection refused", cause)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindConnection))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Connection error: dial tcp: connection refused", UserMessage(err))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(KindFetch, "fetch", "Failed to load image", nil))
}

func TestWrapKeepsOriginalKind(t *testing.T) {
	inner := New(KindValidation, "image", "Please select an image file")
	err := Wrap(KindFetch, "fetch", "Failed to load image", fmt.Errorf("reading body: %w", inner))

	assert.True(t, IsKind(err, KindValidation))
	assert.False(t, IsKind(err, KindFetch))
}

func TestIsKindThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("loading: %w", New(KindInvalidURL, "fetch", "Invalid URL format"))
	assert.True(t, IsKind(err, KindInvalidURL))
	assert.Equal(t, KindInvalidURL, KindOf(err))
}

func TestUnclassified(t *testing.T) {
	err := errors.New("plain")
	assert.False(t, IsKind(err, KindService))
	assert.Equal(t, Kind(""), KindOf(err))
	assert.Equal(t, "plain", UserMessage(err))
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(KindMissingInput, "convert", "Please select an image first"),
			want: "convert: Please select an image first",
		},
		{
			name: "with cause",
			err:  &Error{Kind: KindFetch, Op: "fetch", Message: "Failed to load image", Cause: errors.New("timeout")},
			want: "fetch: Failed to load image: timeout",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
