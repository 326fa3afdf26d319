// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pdiddy/ascii-converter/internal/apperr"
	"github.com/pdiddy/ascii-converter/internal/convert"
	"github.com/pdiddy/ascii-converter/internal/imagesource"
	"github.com/pdiddy/ascii-converter/pkg/types"
)

const okResponse = `{"success":true,"data":{"ascii":"##\n##\n","metadata":{"width":2,"height":2,"originalWidth":160,"originalHeight":160,"charset":"standard","colored":false}}}`

// fakeService answers health and conversion requests and counts conversions.
func fakeService(t *testing.T, healthStatus int) (*httptest.Server, *int32) {
	t.Helper()
	var converts int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case convert.PathHealth:
			w.WriteHeader(healthStatus)
		case convert.PathPublicConvert, convert.PathConvert:
			atomic.AddInt32(&converts, 1)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, okResponse)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &converts
}

func newCLIClients(t *testing.T, baseURL string) (*convert.Client, *imagesource.Loader) {
	t.Helper()
	cfg := types.DefaultClientConfig()
	cfg.APIURL = baseURL
	logger := zaptest.NewLogger(t)
	return convert.New(cfg, http.DefaultClient, logger), imagesource.NewLoader(cfg, http.DefaultClient, logger)
}

func TestConvertOnce_Sample(t *testing.T) {
	srv, converts := fakeService(t, http.StatusOK)
	client, loader := newCLIClients(t, srv.URL)

	var status bytes.Buffer
	result, err := convertOnce(context.Background(), client, loader,
		imageSource{sample: string(imagesource.SampleCircle)}, types.ConversionOptions{}, true, &status)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "##\n##\n", result.ASCII)
	assert.Equal(t, int32(1), atomic.LoadInt32(converts))
	assert.Contains(t, status.String(), convert.MsgOnline)
}

func TestConvertOnce_OfflineHealthDoesNotBlock(t *testing.T) {
	srv, converts := fakeService(t, http.StatusServiceUnavailable)
	client, loader := newCLIClients(t, srv.URL)

	var status bytes.Buffer
	result, err := convertOnce(context.Background(), client, loader,
		imageSource{sample: string(imagesource.SampleGradient)}, types.ConversionOptions{}, true, &status)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, int32(1), atomic.LoadInt32(converts))
	assert.Contains(t, status.String(), convert.MsgUnavailable)
}

func TestConvertOnce_NoHealthProbe(t *testing.T) {
	srv, _ := fakeService(t, http.StatusOK)
	client, loader := newCLIClients(t, srv.URL)

	var status bytes.Buffer
	_, err := convertOnce(context.Background(), client, loader,
		imageSource{sample: string(imagesource.SampleText)}, types.ConversionOptions{}, false, &status)
	require.NoError(t, err)
	assert.Empty(t, status.String())
}

func TestConvertOnce_NoSource(t *testing.T) {
	srv, converts := fakeService(t, http.StatusOK)
	client, loader := newCLIClients(t, srv.URL)

	_, err := convertOnce(context.Background(), client, loader,
		imageSource{}, types.ConversionOptions{}, false, &bytes.Buffer{})
	require.Error(t, err)

	assert.True(t, apperr.IsKind(err, apperr.KindMissingInput))
	assert.Equal(t, "Please select an image first", apperr.UserMessage(err))
	assert.Equal(t, int32(0), atomic.LoadInt32(converts))
}

func TestConvertOnce_LoadFailureSkipsConversion(t *testing.T) {
	srv, converts := fakeService(t, http.StatusOK)
	client, loader := newCLIClients(t, srv.URL)

	_, err := convertOnce(context.Background(), client, loader,
		imageSource{file: t.TempDir() + "/missing.png"}, types.ConversionOptions{}, false, &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(converts))
}

func TestConvertOnce_LoadFailureKeepsHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	client, loader := newCLIClients(t, srv.URL)

	var status bytes.Buffer
	_, err := convertOnce(context.Background(), client, loader,
		imageSource{file: t.TempDir() + "/missing.png"}, types.ConversionOptions{}, true, &status)
	require.Error(t, err)

	assert.Contains(t, status.String(), convert.MsgOnline)
	assert.NotContains(t, status.String(), convert.MsgUnreachable)
}
