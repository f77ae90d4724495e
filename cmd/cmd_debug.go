// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/CrisNevares/communitygroups/directory"
	"github.com/CrisNevares/communitygroups/issue"
	"github.com/CrisNevares/communitygroups/utils/httputils"
	"github.com/spf13/cobra"
)

// isTerminal reports whether f is a character device. If stat fails
// we say that it isn't.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}

	return (info.Mode() & os.ModeCharDevice) != 0
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the requested location from an issue body",
	Long: `Reads an issue body from stdin and prints the location that would be
geocoded, as JSON.

$ printf '### City or location name for your CNCG\n\nCloud Native Berlin\n' | nearby debug extract
{"text":"Berlin"}
	`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		input := os.Stdin
		if isTerminal(input) {
			fmt.Fprintln(os.Stderr, "Paste the issue body, end with Ctrl-D…")
		}

		body, err := io.ReadAll(input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		loc, ok := issue.Extract(string(body))
		if !ok {
			return errors.New("no location found")
		}

		s, err := json.Marshal(loc)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(s))

		return err
	},
}

var debugChaptersCmd = &cobra.Command{
	Use:   "chapters",
	Short: "List the chapter directory as the check sees it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := setup()
		client := httputils.NewClient(cfg.clientOptions())
		chapters := directory.NewProvider(client, cfg.directoryOptions()).FetchChapters(cmd.Context())

		out := cmd.OutOrStdout()
		for _, c := range chapters {
			point := "-"
			if c.Point != nil {
				point = c.Point.String()
			}

			if _, err := fmt.Fprintf(out, "%s\t%s\t%s\n", c.Name, point, c.URL); err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugExtractCmd)
	debugCmd.AddCommand(debugChaptersCmd)
}
