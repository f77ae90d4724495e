// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils provides small text normalization helpers.
package textutils

import (
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return strings.Join(strings.Fields(s), " ")
}

// SlugTitle turns the last path segment of a URL into a display name,
// e.g. "https://host/cloud-native-san-francisco/" -> "Cloud Native San Francisco".
func SlugTitle(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}

	p = strings.TrimRight(p, "/")
	if i := strings.LastIndexByte(p, '/'); i != -1 {
		p = p[i+1:]
	}

	p = strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(p))
	if p == "" {
		return ""
	}

	return cases.Title(language.English).String(p)
}
