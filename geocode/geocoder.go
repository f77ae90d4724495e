// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves free-text place names to coordinates.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/CrisNevares/communitygroups/spatial"
	"github.com/CrisNevares/communitygroups/utils/httputils"
)

// Result represents a geocoding result from any provider.
type Result struct {
	Point       spatial.Point
	Confidence  string // high, medium, low
	Provider    string
	DisplayName string
}

// Geocoder interface for different geocoding providers. Implementations
// return an error wrapping ErrNotFound when the service has no match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Result, error)
}

// getJSON performs a GET and decodes the JSON body into v, classifying
// failures into *Error.
func getJSON(ctx context.Context, client *http.Client, reqURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Error{Kind: KindInvalidRequest, Message: "creating request", Err: err}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}

	defer resp.Body.Close()

	if err := httputils.CheckStatus(resp); err != nil {
		var se *httputils.StatusError
		if errors.As(err, &se) {
			geoErr := ClassifyHTTPStatus(se.Code)
			if geoErr.Err == nil {
				geoErr.Err = err
			} else {
				geoErr.Err = fmt.Errorf("%w: %w", geoErr.Err, err)
			}

			return geoErr
		}

		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &Error{Kind: KindUnknown, Message: "decoding response", Err: err}
	}

	return nil
}

func classifyTransportError(err error) error {
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &Error{Kind: KindTimeout, Message: "geocoding request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return err
	default:
		return &Error{Kind: KindNetwork, Message: "geocoding request failed", Err: err}
	}
}

func notFound(provider, query string) error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s: no results found for %q", provider, query),
		Err:     ErrNotFound,
	}
}
