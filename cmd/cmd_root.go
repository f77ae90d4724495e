// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/geocode"
	"github.com/CrisNevares/communitygroups/nearby"
	"github.com/CrisNevares/communitygroups/utils/ghactions"
	"github.com/CrisNevares/communitygroups/utils/httputils"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// outputName is the step output read by the workflow commenting on the issue.
const outputName = "nearby_chapters"

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "nearby",
	Short: "lists existing chapters close to a requested one",
	Long: `
nearby reads a chapter request issue from $ISSUE_BODY, locates the requested
city and lists the existing chapters within a radius of it. The markdown list
is written to the nearby_chapters step output, empty when there is none.
`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		value := runCheck(cmd.Context(), setup())

		if err := ghactions.NewWriter().SetOutput(outputName, value); err != nil {
			log.Printf("Failed to set output %s: %s", outputName, err)
		}
	},
}

var Version = "dev"

// setup loads .env and the configuration; nothing here is fatal.
func setup() *config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Printf("Invalid configuration, using defaults: %s", err)
	}

	return cfg
}

// newGeocoder returns the configured provider. Google needs a key, taken
// from the environment or looked up through Application Default
// Credentials; without one Nominatim is used.
func newGeocoder(ctx context.Context, cfg *config, client *http.Client) geocode.Geocoder {
	if cfg.Geocoder == geocoderGoogle {
		apiKey := cfg.GoogleMapsAPIKey
		if apiKey == "" {
			log.Println("GOOGLE_MAPS_API_KEY is not set. Attempting to retrieve via ADC...")

			var err error

			apiKey, err = geocode.LookupAPIKey(ctx, cfg.GoogleCloudProject, geocode.DefaultAPIKeyDisplayName)
			if err != nil {
				log.Printf("No Google Maps API key (%s), falling back to Nominatim", err)
			}
		}

		if apiKey != "" {
			return geocode.NewGoogleMapsGeocoder(apiKey, client)
		}
	}

	return geocode.NewNominatimGeocoder(geocode.NominatimOptions{
		BaseURL:    cfg.NominatimURL,
		HTTPClient: client,
	})
}

func newFinder(ctx context.Context, cfg *config, client *http.Client) *nearby.Finder {
	return &nearby.Finder{
		Resolver:     geocode.NewResolver(newGeocoder(ctx, cfg, client), geocode.DefaultTimeout),
		ThresholdKm:  cfg.ThresholdKm,
		Inclusive:    cfg.Inclusive,
		ShowProgress: true,
	}
}

func runCheck(ctx context.Context, cfg *config) string {
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.IssueTitle != "" {
		log.Printf("Issue: %s", cfg.IssueTitle)
	}

	if cfg.IssueBody == "" {
		log.Println("ISSUE_BODY is empty")

		return ""
	}

	client := httputils.NewClient(cfg.clientOptions())
	source := directory.NewProvider(client, cfg.directoryOptions())

	return nearby.Check(ctx, cfg.IssueBody, source, newFinder(ctx, cfg, client))
}

func Execute(version string) {
	Version = version
	rootCmd.Version = version

	err := rootCmd.Execute()
	if err != nil {
		log.Print(err)
		os.Exit(1)
	}
}
