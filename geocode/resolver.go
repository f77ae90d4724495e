// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/CrisNevares/communitygroups/spatial"
)

// DefaultTimeout bounds a single geocoding query.
const DefaultTimeout = 10 * time.Second

type lookup struct {
	point spatial.Point
	found bool
}

// Resolver turns place names into coordinates, absorbing every failure into
// a "not found" answer. Answers are memoized per query for the lifetime of
// the resolver. It is not safe for concurrent use.
type Resolver struct {
	geocoder Geocoder
	timeout  time.Duration
	cache    map[string]lookup
}

// NewResolver wraps g. A non-positive timeout means DefaultTimeout.
func NewResolver(g Geocoder, timeout time.Duration) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Resolver{
		geocoder: g,
		timeout:  timeout,
		cache:    make(map[string]lookup),
	}
}

// Resolve returns the coordinates of text. With a country hint it first asks
// for "text, country" and falls back to text alone.
func (r *Resolver) Resolve(ctx context.Context, text, country string) (spatial.Point, bool) {
	text = strings.TrimSpace(text)
	country = strings.TrimSpace(country)

	if text == "" {
		return spatial.Point{}, false
	}

	if country != "" {
		if p, ok := r.query(ctx, text+", "+country); ok {
			return p, true
		}

		log.Printf("No match for %q with country %q, retrying without it", text, country)
	}

	return r.query(ctx, text)
}

func (r *Resolver) query(ctx context.Context, q string) (spatial.Point, bool) {
	key := strings.ToLower(q)
	if hit, ok := r.cache[key]; ok {
		return hit.point, hit.found
	}

	res, err := r.geocode(ctx, q)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			log.Printf("Geocoding found nothing for %q", q)
		case IsRateLimitError(err), IsQuotaExceededError(err):
			log.Printf("Geocoding throttled for %q: %s", q, err)
		default:
			log.Printf("Geocoding error for %q: %s", q, err)
		}

		r.cache[key] = lookup{}

		return spatial.Point{}, false
	}

	log.Printf("Geocoded %q to %s %s (%s, confidence %s)", q, res.DisplayName, res.Point, res.Provider, res.Confidence)
	r.cache[key] = lookup{point: res.Point, found: true}

	return res.Point, true
}

func (r *Resolver) geocode(ctx context.Context, q string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.geocoder.Geocode(ctx, q)
	if err != nil {
		return nil, err
	}

	if res == nil {
		return nil, ErrNotFound
	}

	if err := res.Point.Validate(); err != nil {
		return nil, &Error{Kind: KindUnknown, Message: "invalid coordinates from " + res.Provider, Err: err}
	}

	return res, nil
}
