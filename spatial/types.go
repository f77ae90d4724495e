// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial holds the geographic primitives shared by the geocoders,
// the chapter directory and the proximity matching.
package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

var errOutOfRange = errors.New("coordinate out of range")

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f)", p.Lat, p.Lng)
}

// Validate reports whether the latitude lies in [-90, 90] and the longitude
// in [-180, 180].
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return fmt.Errorf("%w: %s", errOutOfRange, p)
	}

	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %f", errOutOfRange, p.Lat)
	}

	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("%w: longitude %f", errOutOfRange, p.Lng)
	}

	return nil
}

// DistanceKm returns the great-circle distance between two points on Earth
// in kilometers. Every distance in the program goes through here so that
// rankings are comparable whatever the source of the coordinates.
func (p Point) DistanceKm(other Point) float64 {
	d := h3.GreatCircleDistanceKm(
		h3.NewLatLng(p.Lat, p.Lng),
		h3.NewLatLng(other.Lat, other.Lng),
	)

	return math.Abs(d)
}
