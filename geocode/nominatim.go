// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/CrisNevares/communitygroups/spatial"
	"golang.org/x/time/rate"
)

// DefaultNominatimURL is the public OpenStreetMap Nominatim instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder uses the OpenStreetMap Nominatim search API.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NominatimOptions configures NewNominatimGeocoder.
type NominatimOptions struct {
	// BaseURL of the Nominatim instance, defaults to DefaultNominatimURL
	BaseURL string

	// HTTPClient carries the User-Agent the usage policy requires
	HTTPClient *http.Client

	// MinInterval between requests; the public instance allows one per
	// second. Zero uses one second, negative disables pacing.
	MinInterval time.Duration
}

// NewNominatimGeocoder creates a new Nominatim geocoder.
func NewNominatimGeocoder(opts NominatimOptions) *NominatimGeocoder {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	limit := rate.Inf

	switch {
	case opts.MinInterval == 0:
		limit = rate.Every(time.Second)
	case opts.MinInterval > 0:
		limit = rate.Every(opts.MinInterval)
	}

	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

type nominatimPlace struct {
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

// Geocode implements Geocoder.
func (g *NominatimGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, classifyTransportError(err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "jsonv2")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	var places []nominatimPlace
	if err := getJSON(ctx, g.httpClient, g.baseURL+"/search?"+params.Encode(), &places); err != nil {
		return nil, err
	}

	if len(places) == 0 {
		return nil, notFound("nominatim", query)
	}

	place := places[0]

	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("parsing latitude %q", place.Lat), Err: err}
	}

	lng, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("parsing longitude %q", place.Lon), Err: err}
	}

	// Nominatim ranks places by importance, cities are usually above 0.5
	confidence := "low"

	switch {
	case place.Importance >= 0.6:
		confidence = "high"
	case place.Importance >= 0.3:
		confidence = "medium"
	}

	return &Result{
		Point:       spatial.Point{Lat: lat, Lng: lng},
		Confidence:  confidence,
		Provider:    "nominatim",
		DisplayName: place.DisplayName,
	}, nil
}
