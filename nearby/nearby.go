// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package nearby matches a requested chapter location against the chapter
// directory and renders the chapters found within a radius.
package nearby

import (
	"cmp"
	"context"
	"log"
	"os"
	"slices"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/issue"
	"github.com/CrisNevares/communitygroups/spatial"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// DefaultThresholdKm is the proximity radius.
const DefaultThresholdKm = 100.0

// Resolver turns place names into coordinates. A false result means the
// place could not be located, for whatever reason.
type Resolver interface {
	Resolve(ctx context.Context, text, country string) (spatial.Point, bool)
}

// Match is a chapter within the radius.
type Match struct {
	Chapter    directory.Chapter `json:"chapter"`
	DistanceKm float64           `json:"distance_km"` // unrounded
}

// Finder selects the chapters close to a requested location.
type Finder struct {
	Resolver Resolver

	// ThresholdKm is the radius; zero or less means DefaultThresholdKm.
	ThresholdKm float64

	// Inclusive keeps chapters exactly at the threshold.
	Inclusive bool

	// ShowProgress draws a progress bar on a terminal while chapters are
	// being geocoded.
	ShowProgress bool

	newBar func(n int) *progressbar.ProgressBar
}

func (f *Finder) threshold() float64 {
	if f.ThresholdKm <= 0 {
		return DefaultThresholdKm
	}

	return f.ThresholdKm
}

func (f *Finder) within(d float64) bool {
	if f.Inclusive {
		return d <= f.threshold()
	}

	return d < f.threshold()
}

func newTerminalBar(n int) *progressbar.ProgressBar {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return nil
	}

	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription("Geocoding chapters"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (f *Finder) progress(chapters []directory.Chapter) *progressbar.ProgressBar {
	if !f.ShowProgress {
		return nil
	}

	n := 0

	for _, c := range chapters {
		if c.Point == nil {
			n++
		}
	}

	if n == 0 {
		return nil
	}

	newBar := f.newBar
	if newBar == nil {
		newBar = newTerminalBar
	}

	return newBar(n)
}

// FindNearby returns the chapters closer than the threshold to requested,
// nearest first. Chapters at the same distance keep their directory order.
// Chapters that cannot be located are skipped.
func (f *Finder) FindNearby(ctx context.Context, requested issue.Location, chapters []directory.Chapter) []Match {
	origin, ok := f.Resolver.Resolve(ctx, requested.Text, requested.Country)
	if !ok {
		log.Printf("Could not geocode location: %s", requested)

		return nil
	}

	log.Printf("Location %s geocoded to %s", requested, origin)

	// per chapter lines would break the bar, they are summarized after it
	bar := f.progress(chapters)

	var (
		matches []Match
		skipped int
	)

	for _, c := range chapters {
		var p spatial.Point

		if c.Point != nil {
			p = *c.Point
		} else {
			p, ok = f.Resolver.Resolve(ctx, c.Name, "")

			if bar != nil {
				if err := bar.Add(1); err != nil {
					log.Printf("Failed to update progress bar: %v", err)
				}
			}

			if !ok {
				skipped++

				if bar == nil {
					log.Printf("Skipping %s: location unknown", c.Name)
				}

				continue
			}
		}

		d := origin.DistanceKm(p)
		if bar == nil {
			log.Printf("Distance to %s: %.2f km", c.Name, d)
		}

		if f.within(d) {
			matches = append(matches, Match{Chapter: c, DistanceKm: d})
		}
	}

	if bar != nil {
		if err := bar.Finish(); err != nil {
			log.Printf("Failed to finish progress bar: %v", err)
		}

		log.Printf("Measured %d chapters, %d within %.0f km, %d without location",
			len(chapters)-skipped, len(matches), f.threshold(), skipped)
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	return matches
}
