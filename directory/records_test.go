// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/CrisNevares/communitygroups/spatial"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	tests := []struct {
		input    string
		expected flexString
	}{
		{`"Berlin"`, "Berlin"},
		{`"  Berlin "`, "Berlin"},
		{`null`, ""},
		{`42`, "42"},
		{`{"name": "Germany", "code": "DE"}`, "Germany"},
		{`{"title": "Germany"}`, "Germany"},
		{`true`, ""},
		{`["x"]`, ""},
	}

	for _, tc := range tests {
		var got flexString
		require.NoError(t, json.Unmarshal([]byte(tc.input), &got), tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}
}

func TestFlexFloat(t *testing.T) {
	tests := []struct {
		input    string
		expected flexFloat
	}{
		{`52.52`, flexFloat{52.52, true}},
		{`"-34.9"`, flexFloat{-34.9, true}},
		{`" 13.4 "`, flexFloat{13.4, true}},
		{`""`, flexFloat{}},
		{`null`, flexFloat{}},
		{`"north"`, flexFloat{}},
	}

	for _, tc := range tests {
		var got flexFloat
		require.NoError(t, json.Unmarshal([]byte(tc.input), &got), tc.input)
		assert.Equal(t, tc.expected, got, tc.input)
	}
}

func TestToChapters(t *testing.T) {
	base, _ := url.Parse("https://community.cncf.io/chapters/")

	input := `[
		{"city_name": "Berlin", "country": "Germany", "url": "https://community.cncf.io/cloud-native-berlin/", "latitude": 52.52, "longitude": "13.40", "status": "Active"},
		{"city": "Montevideo", "relative_url": "/cloud-native-montevideo/"},
		{"title": "Cloud Native Kyiv", "url": "/cloud-native-kyiv/", "location": {"lat": 50.45, "lon": 30.52}},
		{"url": "https://community.cncf.io/cloud-native-new-york-city/", "latitude": 100, "longitude": 0},
		{"region": "Bavaria", "country_name": "Germany", "url": "/cloud-native-bavaria/", "latitude": null},
		{"city": "Gone", "url": "/cloud-native-gone/", "status": "Inactive"},
		{"city": "Nowhere"},
		{"url": "https://community.cncf.io/"}
	]`

	var records []rawChapter
	require.NoError(t, json.Unmarshal([]byte(input), &records))

	expected := []Chapter{
		{Name: "Berlin, Germany", URL: "https://community.cncf.io/cloud-native-berlin/", Point: &spatial.Point{Lat: 52.52, Lng: 13.40}},
		{Name: "Montevideo", URL: "https://community.cncf.io/cloud-native-montevideo/"},
		{Name: "Kyiv", URL: "https://community.cncf.io/cloud-native-kyiv/", Point: &spatial.Point{Lat: 50.45, Lng: 30.52}},
		{Name: "New York City", URL: "https://community.cncf.io/cloud-native-new-york-city/"},
		{Name: "Bavaria, Germany", URL: "https://community.cncf.io/cloud-native-bavaria/"},
	}

	if diff := cmp.Diff(expected, toChapters(records, base)); diff != "" {
		t.Errorf("toChapters() mismatch (-want +got):\n%s", diff)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Berlin", displayName("Cloud Native Berlin"))
	assert.Equal(t, "San Francisco", displayName("cloud  native San   Francisco"))
	assert.Equal(t, "Cloud Native", displayName("Cloud Native"))
	assert.Equal(t, "KCD Porto", displayName(" KCD Porto "))
}
