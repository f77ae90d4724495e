// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package issue extracts the requested chapter location from the body of a
// chapter request issue.
package issue

import (
	"regexp"
	"strings"
)

// Location is the place a new chapter is being requested for.
type Location struct {
	Text    string `json:"text"`
	Country string `json:"country,omitempty"` // empty when the issue carries no hint
}

// String returns the location as it would be sent to a geocoder.
func (l Location) String() string {
	if l.Country == "" {
		return l.Text
	}

	return l.Text + ", " + l.Country
}

// noResponse is what GitHub issue forms render for an empty optional field.
const noResponse = "_no response_"

var (
	// ### City or location name for your CNCG\nBerlin
	locationPattern = regexp.MustCompile(`(?is)###\s*City or location name for your CNCG\s*\n\s*(.+?)(?:\n\n|\n###|$)`)

	// ### Country\nGermany, also "Country name" and "Country for your CNCG"
	countryPattern = regexp.MustCompile(`(?is)###\s*Country(?:\s+name)?(?:\s+for your CNCG)?\s*\n\s*(.+?)(?:\n\n|\n###|$)`)

	// "e.g., Berlin", "Cloud Native Berlin"; not "Cloud Nativeville"
	boilerplatePrefix = regexp.MustCompile(`(?i)^(e\.g\.[\s,:]*|cloud\s+native(?:[\s,:]+|$))`)
)

func cleanup(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = boilerplatePrefix.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, noResponse) {
		return ""
	}

	return s
}

func field(pattern *regexp.Regexp, body string) string {
	if m := pattern.FindStringSubmatch(body); m != nil {
		// an empty field runs into the next heading
		if strings.HasPrefix(strings.TrimSpace(m[1]), "#") {
			return ""
		}

		return cleanup(m[1])
	}

	return ""
}

// Looser scan used when the heading does not match: any line mentioning the
// field, followed by the next non-blank line that is not a heading.
func scanLines(body string) string {
	lines := strings.Split(body, "\n")

	for i, line := range lines {
		if !strings.Contains(line, "City or location name") &&
			!strings.Contains(strings.ToLower(line), "location name for your cncg") {
			continue
		}

		for _, next := range lines[i+1:] {
			next = strings.TrimSpace(next)
			if next != "" && !strings.HasPrefix(next, "#") {
				return cleanup(next)
			}
		}
	}

	return ""
}

// Extract returns the requested location found in body. The boolean is false
// when the issue does not name a location, which is an expected outcome.
func Extract(body string) (Location, bool) {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	if strings.TrimSpace(body) == "" {
		return Location{}, false
	}

	text := field(locationPattern, body)
	if text == "" && !locationPattern.MatchString(body) {
		text = scanLines(body)
	}

	if text == "" {
		return Location{}, false
	}

	return Location{
		Text:    text,
		Country: field(countryPattern, body),
	}, true
}
