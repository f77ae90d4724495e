// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupNominatim serves a fake /search endpoint backed by places.
func setupNominatim(t *testing.T, handler gin.HandlerFunc) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/search", handler)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv
}

func TestNominatimGeocode(t *testing.T) {
	var gotQuery, gotFormat, gotLimit string

	srv := setupNominatim(t, func(ctx *gin.Context) {
		gotQuery = ctx.Query("q")
		gotFormat = ctx.Query("format")
		gotLimit = ctx.Query("limit")

		ctx.JSON(http.StatusOK, []gin.H{
			{"lat": "52.5170365", "lon": "13.3888599", "display_name": "Berlin, Deutschland", "importance": 0.85},
		})
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL + "/", MinInterval: -1})

	res, err := g.Geocode(context.Background(), "Berlin, Germany")
	require.NoError(t, err)

	assert.Equal(t, "Berlin, Germany", gotQuery)
	assert.Equal(t, "jsonv2", gotFormat)
	assert.Equal(t, "1", gotLimit)
	assert.InDelta(t, 52.5170365, res.Point.Lat, 1e-9)
	assert.InDelta(t, 13.3888599, res.Point.Lng, 1e-9)
	assert.Equal(t, "high", res.Confidence)
	assert.Equal(t, "nominatim", res.Provider)
	assert.Equal(t, "Berlin, Deutschland", res.DisplayName)
}

func TestNominatimGeocode_NoResults(t *testing.T) {
	srv := setupNominatim(t, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, []gin.H{})
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL, MinInterval: -1})

	_, err := g.Geocode(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestNominatimGeocode_RateLimited(t *testing.T) {
	srv := setupNominatim(t, func(ctx *gin.Context) {
		ctx.String(http.StatusTooManyRequests, "slow down")
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL, MinInterval: -1})

	_, err := g.Geocode(context.Background(), "Berlin")
	require.Error(t, err)
	assert.True(t, IsRateLimitError(err))
	assert.Contains(t, err.Error(), "slow down")
}

func TestNominatimGeocode_BadCoordinates(t *testing.T) {
	srv := setupNominatim(t, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, []gin.H{{"lat": "north", "lon": "13.4"}})
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL, MinInterval: -1})

	_, err := g.Geocode(context.Background(), "Berlin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "latitude")
}

func TestNominatimGeocode_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	srv := setupNominatim(t, func(ctx *gin.Context) {
		select {
		case <-release:
		case <-ctx.Request.Context().Done():
		}
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL, MinInterval: -1})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Geocode(ctx, "Berlin")
	require.Error(t, err)
	assert.True(t, IsTimeoutError(err), "got %v", err)
}

func TestNominatimGeocode_Pacing(t *testing.T) {
	srv := setupNominatim(t, func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, []gin.H{{"lat": "1", "lon": "2"}})
	})

	g := NewNominatimGeocoder(NominatimOptions{BaseURL: srv.URL, MinInterval: 100 * time.Millisecond})

	start := time.Now()

	for range 3 {
		_, err := g.Geocode(context.Background(), "x")
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 180*time.Millisecond)
}
