// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"bytes"
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/CrisNevares/communitygroups/spatial"
	"github.com/CrisNevares/communitygroups/utils/textutils"
)

// flexString accepts a JSON string, number, or an object carrying a name,
// so that a field changing type does not fail the whole record set.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		*s = flexString(strings.TrimSpace(v))
	case data[0] == '{':
		var v struct {
			Name  string `json:"name"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		*s = flexString(strings.TrimSpace(v.Title))
		if v.Name != "" {
			*s = flexString(strings.TrimSpace(v.Name))
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*s = flexString(data)
	default:
		*s = ""
	}

	return nil
}

// flexFloat accepts a JSON number or a numeric string. Valid is false for
// null, empty or non numeric values.
type flexFloat struct {
	Value float64
	Valid bool
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = flexFloat{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}

	// a bad coordinate only drops the coordinate, not the record
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		*f = flexFloat{Value: v, Valid: true}
	}

	return nil
}

type rawLocation struct {
	Lat flexFloat `json:"lat"`
	Lng flexFloat `json:"lng"`
	Lon flexFloat `json:"lon"`
}

// rawChapter is the union of the fields seen in the structured endpoint and
// in the data embedded in the listing page.
type rawChapter struct {
	Title       flexString   `json:"title"`
	Name        flexString   `json:"name"`
	City        flexString   `json:"city"`
	CityName    flexString   `json:"city_name"`
	Region      flexString   `json:"region"`
	Country     flexString   `json:"country"`
	CountryName flexString   `json:"country_name"`
	URL         flexString   `json:"url"`
	RelativeURL flexString   `json:"relative_url"`
	Status      flexString   `json:"status"`
	Latitude    flexFloat    `json:"latitude"`
	Longitude   flexFloat    `json:"longitude"`
	Location    *rawLocation `json:"location"`
}

func firstNonEmpty(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}

	return ""
}

var cloudNativePrefix = regexp.MustCompile(`(?i)^cloud\s+native\s+`)

// displayName drops the "Cloud Native" prefix chapter titles carry, so
// that the name can be geocoded.
func displayName(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if trimmed := cloudNativePrefix.ReplaceAllString(s, ""); trimmed != "" {
		return trimmed
	}

	return s
}

func (r *rawChapter) active() bool {
	return r.Status == "" || strings.EqualFold(string(r.Status), "active")
}

func (r *rawChapter) point() *spatial.Point {
	lat, lng := r.Latitude, r.Longitude

	if (!lat.Valid || !lng.Valid) && r.Location != nil {
		lat = r.Location.Lat
		lng = r.Location.Lng

		if !lng.Valid {
			lng = r.Location.Lon
		}
	}

	if !lat.Valid || !lng.Valid {
		return nil
	}

	p := spatial.Point{Lat: lat.Value, Lng: lng.Value}
	if p.Validate() != nil {
		return nil
	}

	return &p
}

// toChapter maps the record; the boolean is false for inactive entries and
// entries without a name or URL.
func (r *rawChapter) toChapter(base *url.URL) (Chapter, bool) {
	if !r.active() {
		return Chapter{}, false
	}

	href := firstNonEmpty(r.URL, r.RelativeURL)
	if href == "" {
		return Chapter{}, false
	}

	if base != nil {
		if u, err := url.Parse(href); err == nil {
			href = base.ResolveReference(u).String()
		}
	}

	city := firstNonEmpty(r.CityName, r.City)
	country := firstNonEmpty(r.CountryName, r.Country)

	var name string

	switch {
	case city != "" && country != "":
		name = city + ", " + country
	case city != "":
		name = city
	case r.Region != "" && country != "":
		name = string(r.Region) + ", " + country
	default:
		name = displayName(firstNonEmpty(r.Title, r.Name))
	}

	if name == "" {
		name = displayName(textutils.SlugTitle(href))
	}

	if name == "" {
		return Chapter{}, false
	}

	return Chapter{
		Name:  name,
		URL:   href,
		Point: r.point(),
	}, true
}

func toChapters(records []rawChapter, base *url.URL) []Chapter {
	ret := make([]Chapter, 0, len(records))

	for i := range records {
		if c, ok := records[i].toChapter(base); ok {
			ret = append(ret, c)
		}
	}

	return ret
}
