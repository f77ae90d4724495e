// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package htmlutils provides utility functions for working with HTML.
package htmlutils

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Node2string appends the visible text below n to sb, separating text
// nodes with a single space. Script and style contents are skipped.
func Node2string(n *html.Node, sb *strings.Builder) {
	switch {
	case n.Type == html.TextNode:
		tmp := strings.Join(strings.Fields(n.Data), " ")
		if tmp == "" {
			return
		}

		if sb.Len() != 0 {
			sb.WriteByte(' ')
		}

		sb.WriteString(tmp)
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
		return
	default:
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			Node2string(child, sb)
		}
	}
}

// Text returns the visible text below n.
func Text(n *html.Node) string {
	sb := strings.Builder{}
	Node2string(n, &sb)

	return sb.String()
}

// Attr returns the value of the attribute named key, or "".
func Attr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(key, attr.Key) {
			return attr.Val
		}
	}

	return ""
}

// IsElement reports whether n is an element with the given tag name.
func IsElement(n *html.Node, tags ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}

	for _, tag := range tags {
		if strings.EqualFold(tag, n.Data) {
			return true
		}
	}

	return false
}

// HasClassHint reports whether any class of n contains one of the hints,
// case-insensitively (e.g. "chapter-card" matches the hint "chapter").
func HasClassHint(n *html.Node, hints ...string) bool {
	for _, class := range strings.Fields(strings.ToLower(Attr(n, "class"))) {
		for _, hint := range hints {
			if strings.Contains(class, hint) {
				return true
			}
		}
	}

	return false
}

// Validates that response seems to be an HTML response.
func hasHTMLContentType(media string) bool {
	const expectedMedia = "text/html"

	return strings.EqualFold(
		expectedMedia,
		media[0:min(len(media), len(expectedMedia))],
	)
}

// AsReader converts an HTTP response body to an io.Reader with the correct charset.
func AsReader(resp *http.Response) (io.Reader, error) {
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	media := resp.Header.Get("Content-Type")
	if !hasHTMLContentType(media) {
		return nil, fmt.Errorf("media type is %s", media)
	}

	rr, err := charset.NewReader(resp.Body, media)
	if err != nil {
		return nil, err
	}

	return rr, nil
}

// AsNode parses an io.Reader as an HTML node.
func AsNode(r io.Reader) (*html.Node, error) {
	n, err := html.Parse(r)
	if nil != err {
		return nil, fmt.Errorf("parsing body as HTML: %w", err)
	}

	return n, nil
}
