// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package nearby

import (
	"context"
	"log"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/issue"
)

// ChapterSource lists the known chapters. It never fails, an unreachable
// directory yields a built-in list.
type ChapterSource interface {
	FetchChapters(ctx context.Context) []directory.Chapter
}

// Check runs the whole pipeline over an issue body and returns the
// formatted list of nearby chapters, or "" when there is nothing to report.
func Check(ctx context.Context, body string, source ChapterSource, finder *Finder) string {
	requested, ok := issue.Extract(body)
	if !ok {
		log.Printf("Could not extract location from issue body")

		return ""
	}

	log.Printf("Checking for chapters near: %s", requested)

	// the directory is only worth downloading for a place that exists
	if _, ok := finder.Resolver.Resolve(ctx, requested.Text, requested.Country); !ok {
		log.Printf("Could not geocode location: %s", requested)

		return ""
	}

	chapters := source.FetchChapters(ctx)
	log.Printf("Found %d chapters in the directory", len(chapters))

	matches := finder.FindNearby(ctx, requested, chapters)
	if len(matches) == 0 {
		log.Printf("No nearby chapters found")

		return ""
	}

	log.Printf("Found %d nearby chapters", len(matches))

	return Format(matches)
}
