// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/CrisNevares/communitygroups/spatial"
)

// DefaultGoogleMapsURL is the Google Maps Geocoding API endpoint.
const DefaultGoogleMapsURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder. A nil client
// gets one bounded by DefaultTimeout.
func NewGoogleMapsGeocoder(apiKey string, client *http.Client) *GoogleMapsGeocoder {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	return &GoogleMapsGeocoder{
		apiKey:     apiKey,
		baseURL:    DefaultGoogleMapsURL,
		httpClient: client,
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

func googleStatusError(status, message string) *Error {
	msg := "google maps status: " + status
	if message != "" {
		msg += " (" + message + ")"
	}

	switch status {
	case "ZERO_RESULTS":
		return &Error{Kind: KindNotFound, Message: msg, Err: ErrNotFound}
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return &Error{Kind: KindQuotaExceeded, Message: msg}
	case "REQUEST_DENIED":
		return &Error{Kind: KindQuotaExceeded, Message: msg}
	case "INVALID_REQUEST":
		return &Error{Kind: KindInvalidRequest, Message: msg}
	default:
		return &Error{Kind: KindUnknown, Message: msg}
	}
}

// Geocode implements Geocoder.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(g.apiKey) == "" {
		return nil, &Error{Kind: KindInvalidRequest, Message: "google maps API key is not set"}
	}

	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.apiKey)

	var gmResp googleMapsResponse
	if err := getJSON(ctx, g.httpClient, g.baseURL+"?"+params.Encode(), &gmResp); err != nil {
		return nil, err
	}

	if gmResp.Status != "OK" {
		return nil, googleStatusError(gmResp.Status, gmResp.ErrorMessage)
	}

	if len(gmResp.Results) == 0 {
		return nil, notFound("google_maps", query)
	}

	result := gmResp.Results[0]

	// Determine confidence based on location_type
	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	}

	return &Result{
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Confidence:  confidence,
		Provider:    "google_maps",
		DisplayName: result.FormattedAddress,
	}, nil
}
