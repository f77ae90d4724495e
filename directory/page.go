// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/CrisNevares/communitygroups/utils/htmlutils"
)

const maxPageBody = 16 << 20

var (
	errNoEmbeddedData = errors.New("no localChapters variable in page")
	errUnbalanced     = errors.New("unbalanced brackets")
)

// var localChapters = [ ... ];
var embeddedPattern = regexp.MustCompile(`(?:var|let|const)\s+localChapters\s*=\s*\[`)

// pageSource downloads the listing page once and serves both the embedded
// data and the markup strategies from it.
type pageSource struct {
	client *http.Client
	url    string

	loaded bool
	base   *url.URL
	body   string
	err    error
}

func (s *pageSource) load(ctx context.Context) (string, error) {
	if !s.loaded {
		s.loaded = true
		s.body, s.err = s.download(ctx)
	}

	return s.body, s.err
}

func (s *pageSource) download(ctx context.Context) (_ string, err error) {
	s.base, err = url.Parse(s.url)
	if err != nil {
		return "", fmt.Errorf("parsing page URL <%s>: %w", s.url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing resp.Body: %w", cerr))
		}
	}()

	r, err := htmlutils.AsReader(resp)
	if err != nil {
		return "", fmt.Errorf("converting response to reader: %w", err)
	}

	b, err := io.ReadAll(io.LimitReader(r, maxPageBody))
	if err != nil {
		return "", fmt.Errorf("reading page: %w", err)
	}

	return string(b), nil
}

// matchingBracket returns the index of the ']' closing the '[' at start.
// Brackets inside string literals are ignored.
func matchingBracket(s string, start int) (int, error) {
	if start < 0 || start >= len(s) || s[start] != '[' {
		return -1, fmt.Errorf("%w: no opening bracket at %d", errUnbalanced, start)
	}

	var (
		depth   int
		quote   byte
		escaped bool
	)

	for i := start; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == quote:
				quote = 0
			}

			continue
		}

		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}

	return -1, fmt.Errorf("%w: %d left open", errUnbalanced, depth)
}

// extractEmbeddedArray returns the source text of the localChapters array.
func extractEmbeddedArray(content string) (string, error) {
	loc := embeddedPattern.FindStringIndex(content)
	if loc == nil {
		return "", errNoEmbeddedData
	}

	start := loc[1] - 1

	end, err := matchingBracket(content, start)
	if err != nil {
		return "", fmt.Errorf("localChapters array: %w", err)
	}

	return content[start : end+1], nil
}

func (s *pageSource) embedded(ctx context.Context) ([]Chapter, error) {
	content, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	array, err := extractEmbeddedArray(content)
	if err != nil {
		return nil, err
	}

	var records []rawChapter
	if err := json.Unmarshal([]byte(array), &records); err != nil {
		return nil, fmt.Errorf("parsing localChapters data: %w", err)
	}

	return toChapters(records, s.base), nil
}

func (s *pageSource) markup(ctx context.Context) ([]Chapter, error) {
	content, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := htmlutils.AsNode(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	return scrapeChapters(doc, s.base), nil
}
