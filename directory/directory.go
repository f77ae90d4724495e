// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory retrieves the roster of existing chapters. The remote
// directory changes shape over time, so it is read through an ordered chain
// of strategies that ends in a built-in list and never fails.
package directory

import (
	"context"
	"log"
	"net/http"
	"slices"

	"github.com/CrisNevares/communitygroups/spatial"
)

const (
	// DefaultAPIURL is the structured chapter endpoint of the community site.
	DefaultAPIURL = "https://community.cncf.io/api/chapter/?status=Active&page_size=500"

	// DefaultPageURL is the public chapter listing page.
	DefaultPageURL = "https://community.cncf.io/chapters/"

	// DefaultMaxPages bounds API pagination.
	DefaultMaxPages = 20
)

// Chapter is a known community group.
type Chapter struct {
	Name  string         `json:"name"`
	URL   string         `json:"url"`
	Point *spatial.Point `json:"point,omitempty"` // nil when the source has no coordinates
}

// Strategy is one way of reading the directory. Fetch returns an error or
// an empty slice when the source has nothing usable.
type Strategy struct {
	Name  string
	Fetch func(ctx context.Context) ([]Chapter, error)
}

// Options configures NewProvider.
type Options struct {
	// APIURL of the structured endpoint, empty disables the strategy
	APIURL string

	// PageURL of the public listing page, empty disables the page strategies
	PageURL string

	// MaxPages followed when the API paginates
	MaxPages int

	// Fallback replaces the built-in list
	Fallback []Chapter
}

// DefaultOptions returns the options pointing to the public community site.
func DefaultOptions() Options {
	return Options{
		APIURL:   DefaultAPIURL,
		PageURL:  DefaultPageURL,
		MaxPages: DefaultMaxPages,
	}
}

// Provider walks the strategies in order until one yields chapters.
type Provider struct {
	strategies []Strategy
	fallback   []Chapter
}

// NewProvider returns a Provider with the api, embedded and markup
// strategies, falling back to the built-in list.
func NewProvider(client *http.Client, opts Options) *Provider {
	if client == nil {
		client = http.DefaultClient
	}

	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}

	var strategies []Strategy

	if opts.APIURL != "" {
		api := &apiSource{client: client, url: opts.APIURL, maxPages: opts.MaxPages}
		strategies = append(strategies, Strategy{Name: "api", Fetch: api.fetch})
	}

	if opts.PageURL != "" {
		page := &pageSource{client: client, url: opts.PageURL}
		strategies = append(strategies,
			Strategy{Name: "embedded", Fetch: page.embedded},
			Strategy{Name: "markup", Fetch: page.markup},
		)
	}

	return NewChain(opts.Fallback, strategies...)
}

// NewChain builds a Provider from explicit strategies. A nil fallback means
// the built-in list.
func NewChain(fallback []Chapter, strategies ...Strategy) *Provider {
	if len(fallback) == 0 {
		fallback = StaticChapters()
	}

	return &Provider{
		strategies: strategies,
		fallback:   fallback,
	}
}

// FetchChapters returns the chapters of the first strategy that yields any,
// or the fallback list.
func (p *Provider) FetchChapters(ctx context.Context) []Chapter {
	for _, s := range p.strategies {
		chapters, err := s.Fetch(ctx)
		if err != nil {
			log.Printf("Directory %s strategy failed: %s", s.Name, err)

			continue
		}

		if len(chapters) == 0 {
			log.Printf("Directory %s strategy returned no chapters", s.Name)

			continue
		}

		log.Printf("Successfully read %d chapters using the %s strategy", len(chapters), s.Name)

		return chapters
	}

	log.Printf("Using the built-in list of %d chapters", len(p.fallback))

	return slices.Clone(p.fallback)
}
