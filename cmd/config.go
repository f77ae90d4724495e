// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/geocode"
	"github.com/CrisNevares/communitygroups/nearby"
	"github.com/CrisNevares/communitygroups/utils/httputils"
)

const (
	geocoderNominatim = "nominatim"
	geocoderGoogle    = "google"
)

// config is read from the environment of the workflow step.
type config struct {
	IssueBody  string
	IssueTitle string

	ThresholdKm float64
	Inclusive   bool

	Geocoder           string
	NominatimURL       string
	GoogleMapsAPIKey   string
	GoogleCloudProject string

	ChaptersAPIURL  string
	ChaptersPageURL string

	UserAgent     string
	HTTPTrace     bool
	HTTPTraceBody bool
}

func getEnv(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}

	return fallback
}

func getBool(getenv func(string) string, key string) (bool, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}

	return b, nil
}

// loadConfig reads the configuration through getenv. Invalid values are
// reported in the error and replaced by their defaults, so the returned
// config is always usable.
func loadConfig(getenv func(string) string) (*config, error) {
	var errs []error

	cfg := &config{
		IssueBody:          getenv("ISSUE_BODY"),
		IssueTitle:         strings.TrimSpace(getenv("ISSUE_TITLE")),
		ThresholdKm:        nearby.DefaultThresholdKm,
		Geocoder:           strings.ToLower(getEnv(getenv, "GEOCODER", geocoderNominatim)),
		NominatimURL:       getEnv(getenv, "NOMINATIM_URL", geocode.DefaultNominatimURL),
		GoogleMapsAPIKey:   getEnv(getenv, "GOOGLE_MAPS_API_KEY", ""),
		GoogleCloudProject: getEnv(getenv, "GOOGLE_CLOUD_PROJECT", ""),
		ChaptersAPIURL:     getEnv(getenv, "CHAPTERS_API_URL", directory.DefaultAPIURL),
		ChaptersPageURL:    getEnv(getenv, "CHAPTERS_PAGE_URL", directory.DefaultPageURL),
		UserAgent:          getEnv(getenv, "USER_AGENT", httputils.DefaultUserAgent),
	}

	if v := strings.TrimSpace(getenv("NEARBY_THRESHOLD_KM")); v != "" {
		km, err := strconv.ParseFloat(v, 64)
		if err != nil || km <= 0 {
			errs = append(errs, fmt.Errorf("NEARBY_THRESHOLD_KM: %q is not a positive number", v))
		} else {
			cfg.ThresholdKm = km
		}
	}

	var err error

	if cfg.Inclusive, err = getBool(getenv, "NEARBY_INCLUSIVE"); err != nil {
		errs = append(errs, err)
	}

	if cfg.HTTPTrace, err = getBool(getenv, "HTTP_TRACE"); err != nil {
		errs = append(errs, err)
	}

	if cfg.HTTPTraceBody, err = getBool(getenv, "HTTP_TRACE_BODY"); err != nil {
		errs = append(errs, err)
	}

	switch cfg.Geocoder {
	case geocoderNominatim, geocoderGoogle:
	default:
		errs = append(errs, fmt.Errorf("GEOCODER: unknown geocoder %q", cfg.Geocoder))
		cfg.Geocoder = geocoderNominatim
	}

	return cfg, errors.Join(errs...)
}

func (c *config) clientOptions() *httputils.ClientOptions {
	return &httputils.ClientOptions{
		UserAgent:           c.UserAgent,
		Timeout:             geocode.DefaultTimeout,
		EnableHTTPTrace:     c.HTTPTrace,
		EnableHTTPBodyTrace: c.HTTPTraceBody,
	}
}

func (c *config) directoryOptions() directory.Options {
	opts := directory.DefaultOptions()
	opts.APIURL = c.ChaptersAPIURL
	opts.PageURL = c.ChaptersPageURL

	return opts
}
