// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/CrisNevares/communitygroups/utils/htmlutils"
	"github.com/CrisNevares/communitygroups/utils/textutils"
	"golang.org/x/net/html"
)

// Class fragments marking chapter listings, e.g. "chapter-card", "group-item".
var classHints = []string{"chapter", "community", "group"}

// /cloud-native-berlin/
var chapterPathPattern = regexp.MustCompile(`(?i)^/cloud-native-[a-z0-9-]+/?$`)

// longer anchor texts are descriptions, not names
const maxNameLength = 80

type scraper struct {
	base     *url.URL
	seen     map[string]bool
	chapters []Chapter
}

// scrapeChapters collects chapter links from rendered markup.
func scrapeChapters(doc *html.Node, base *url.URL) []Chapter {
	s := &scraper{
		base: base,
		seen: make(map[string]bool),
	}
	s.visit(doc)

	return s.chapters
}

func firstAnchor(n *html.Node) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if htmlutils.IsElement(child, "a") && htmlutils.Attr(child, "href") != "" {
			return child
		}

		if a := firstAnchor(child); a != nil {
			return a
		}
	}

	return nil
}

func (s *scraper) resolve(href string) (*url.URL, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil, false
	}

	u, err := url.Parse(href)
	if err != nil {
		return nil, false
	}

	if s.base != nil {
		u = s.base.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}

	// home and self links are navigation
	if strings.Trim(u.Path, "/") == "" || (s.base != nil && u.Host == s.base.Host && u.Path == s.base.Path) {
		return nil, false
	}

	return u, true
}

func (s *scraper) add(a *html.Node) {
	u, ok := s.resolve(htmlutils.Attr(a, "href"))
	if !ok {
		return
	}

	name := htmlutils.Text(a)
	if name == "" {
		name = htmlutils.Attr(a, "title")
	}

	if name == "" {
		name = htmlutils.Attr(a, "aria-label")
	}

	if name == "" || len(name) > maxNameLength {
		name = textutils.SlugTitle(u.String())
	}

	name = displayName(name)
	if name == "" || len(name) > maxNameLength {
		return
	}

	key := textutils.LowerASCIIFolding(name)
	if s.seen[key] {
		return
	}

	s.seen[key] = true
	s.chapters = append(s.chapters, Chapter{Name: name, URL: u.String()})
}

func (s *scraper) visit(n *html.Node) {
	switch {
	case htmlutils.IsElement(n, "a"):
		if htmlutils.HasClassHint(n, classHints...) {
			s.add(n)
		} else if u, ok := s.resolve(htmlutils.Attr(n, "href")); ok && chapterPathPattern.MatchString(u.Path) {
			s.add(n)
		}

		return
	case htmlutils.IsElement(n, "div", "li", "article", "section") && htmlutils.HasClassHint(n, classHints...):
		if a := firstAnchor(n); a != nil {
			s.add(a)
		}
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		s.visit(child)
	}
}
