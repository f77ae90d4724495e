// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"errors"
	"fmt"
	"log"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// DefaultAPIKeyDisplayName is the display name of the Maps key looked up
// through Application Default Credentials.
const DefaultAPIKeyDisplayName = "CNCG Geocoding Key"

// ErrNoAPIKey is returned by LookupAPIKey when no usable key exists.
var ErrNoAPIKey = errors.New("google maps API key not available")

func wrapNoKey(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNoAPIKey, fmt.Sprintf(format, args...))
}

// LookupAPIKey retrieves the Google Maps API key whose display name is
// displayName from the Cloud API Keys service, using Application Default
// Credentials. projectID is used when the credentials carry none. The whole
// lookup is bounded by DefaultTimeout.
func LookupAPIKey(ctx context.Context, projectID, displayName string) (string, error) {
	if displayName == "" {
		displayName = DefaultAPIKeyDisplayName
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("looking up API key: %w", err)
	}

	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	if creds.ProjectID != "" {
		projectID = creds.ProjectID
	}

	if projectID == "" {
		return "", wrapNoKey("no project ID in credentials nor configuration")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	it := client.ListKeys(ctx, &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	})

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != displayName {
			continue
		}

		// ListKeys redacts the secret, GetKeyString returns it.
		log.Printf("Found key resource '%s', retrieving secret...", key.Name)

		resp, err := client.GetKeyString(ctx, &apikeyspb.GetKeyStringRequest{Name: key.Name})
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", wrapNoKey("key '%s' has an empty key string", displayName)
		}

		return resp.KeyString, nil
	}

	return "", wrapNoKey("key with display name '%s' not found in project %s", displayName, projectID)
}
