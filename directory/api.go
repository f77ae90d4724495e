// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"

	"github.com/CrisNevares/communitygroups/utils/httputils"
)

const maxAPIBody = 16 << 20

var errUnexpectedShape = errors.New("unexpected response shape")

// apiSource reads the structured chapter endpoint.
type apiSource struct {
	client   *http.Client
	url      string
	maxPages int
}

// apiPage is the paginated envelope. The list has been published under
// different keys.
type apiPage struct {
	Results  json.RawMessage `json:"results"`
	Chapters json.RawMessage `json:"chapters"`
	Data     json.RawMessage `json:"data"`
	Next     string          `json:"next"`
	Links    struct {
		Next string `json:"next"`
	} `json:"links"`
}

func (p *apiPage) list() json.RawMessage {
	for _, raw := range []json.RawMessage{p.Results, p.Chapters, p.Data} {
		if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] == '[' {
			return raw
		}
	}

	return nil
}

func (p *apiPage) next() string {
	if p.Next != "" {
		return p.Next
	}

	return p.Links.Next
}

// decodeAPIPage accepts either a bare array or an envelope object. It
// returns the records and the next page reference, if any.
func decodeAPIPage(body []byte) ([]rawChapter, string, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, "", fmt.Errorf("%w: empty body", errUnexpectedShape)
	}

	var records []rawChapter

	switch body[0] {
	case '[':
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, "", fmt.Errorf("decoding chapter list: %w", err)
		}

		return records, "", nil
	case '{':
		var page apiPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, "", fmt.Errorf("decoding chapter page: %w", err)
		}

		list := page.list()
		if list == nil {
			return nil, "", fmt.Errorf("%w: no chapter list in object", errUnexpectedShape)
		}

		if err := json.Unmarshal(list, &records); err != nil {
			return nil, "", fmt.Errorf("decoding chapter list: %w", err)
		}

		return records, page.next(), nil
	default:
		return nil, "", fmt.Errorf("%w: body starts with %q", errUnexpectedShape, body[0])
	}
}

func (s *apiSource) get(ctx context.Context, pageURL string) (_ []byte, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}

	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing resp.Body: %w", cerr))
		}
	}()

	if err := httputils.CheckStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxAPIBody))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return body, nil
}

func (s *apiSource) fetch(ctx context.Context) ([]Chapter, error) {
	var chapters []Chapter

	pageURL := s.url
	seen := map[string]bool{}

	for page := 1; pageURL != "" && page <= s.maxPages; page++ {
		seen[pageURL] = true

		base, err := url.Parse(pageURL)
		if err != nil {
			return nil, fmt.Errorf("parsing API URL <%s>: %w", pageURL, err)
		}

		body, err := s.get(ctx, pageURL)
		if err != nil {
			if len(chapters) > 0 {
				log.Printf("API - page %d failed, keeping %d chapters: %s", page, len(chapters), err)

				break
			}

			return nil, err
		}

		records, next, err := decodeAPIPage(body)
		if err != nil {
			if len(chapters) > 0 {
				log.Printf("API - page %d unreadable, keeping %d chapters: %s", page, len(chapters), err)

				break
			}

			return nil, err
		}

		chapters = append(chapters, toChapters(records, base)...)
		log.Printf("API - page %d: %d records, %d active chapters so far", page, len(records), len(chapters))

		pageURL = ""

		if next != "" {
			u, err := url.Parse(next)
			if err != nil {
				return nil, fmt.Errorf("parsing next page URL <%s>: %w", next, err)
			}

			if resolved := base.ResolveReference(u).String(); !seen[resolved] {
				pageURL = resolved
			}
		}
	}

	return chapters, nil
}
