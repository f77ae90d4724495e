// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"testing"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/geocode"
	"github.com/CrisNevares/communitygroups/utils/httputils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{"ISSUE_BODY": "body"}))
	require.NoError(t, err)

	expected := &config{
		IssueBody:       "body",
		ThresholdKm:     100,
		Geocoder:        geocoderNominatim,
		NominatimURL:    geocode.DefaultNominatimURL,
		ChaptersAPIURL:  directory.DefaultAPIURL,
		ChaptersPageURL: directory.DefaultPageURL,
		UserAgent:       httputils.DefaultUserAgent,
	}

	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Errorf("loadConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{
		"ISSUE_TITLE":          " [CNCG] Berlin ",
		"NEARBY_THRESHOLD_KM":  "250.5",
		"NEARBY_INCLUSIVE":     "true",
		"GEOCODER":             "Google",
		"GOOGLE_MAPS_API_KEY":  "secret",
		"GOOGLE_CLOUD_PROJECT": "my-project",
		"CHAPTERS_API_URL":     "http://localhost/api",
		"CHAPTERS_PAGE_URL":    "http://localhost/page",
		"USER_AGENT":           "test/1.0",
		"HTTP_TRACE":           "1",
	}))
	require.NoError(t, err)

	assert.Equal(t, "[CNCG] Berlin", cfg.IssueTitle)
	assert.InDelta(t, 250.5, cfg.ThresholdKm, 1e-9)
	assert.True(t, cfg.Inclusive)
	assert.Equal(t, geocoderGoogle, cfg.Geocoder)
	assert.Equal(t, "secret", cfg.GoogleMapsAPIKey)
	assert.Equal(t, "my-project", cfg.GoogleCloudProject)
	assert.True(t, cfg.HTTPTrace)
	assert.False(t, cfg.HTTPTraceBody)

	opts := cfg.directoryOptions()
	assert.Equal(t, "http://localhost/api", opts.APIURL)
	assert.Equal(t, "http://localhost/page", opts.PageURL)
	assert.Equal(t, directory.DefaultMaxPages, opts.MaxPages)

	client := cfg.clientOptions()
	assert.Equal(t, "test/1.0", client.UserAgent)
	assert.True(t, client.EnableHTTPTrace)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cfg, err := loadConfig(env(map[string]string{
		"NEARBY_THRESHOLD_KM": "-5",
		"NEARBY_INCLUSIVE":    "maybe",
		"GEOCODER":            "bing",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEARBY_THRESHOLD_KM")
	assert.Contains(t, err.Error(), "NEARBY_INCLUSIVE")
	assert.Contains(t, err.Error(), "GEOCODER")

	// still usable
	assert.InDelta(t, 100, cfg.ThresholdKm, 1e-9)
	assert.False(t, cfg.Inclusive)
	assert.Equal(t, geocoderNominatim, cfg.Geocoder)
}

func TestRunCheck_EmptyBody(t *testing.T) {
	cfg, err := loadConfig(env(nil))
	require.NoError(t, err)

	assert.Empty(t, runCheck(t.Context(), cfg))
}
