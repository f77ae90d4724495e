// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

// Package ghactions writes step outputs the way GitHub Actions reads them back.
package ghactions

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputEnv names the environment variable holding the output file path.
const OutputEnv = "GITHUB_OUTPUT"

var escaper = strings.NewReplacer("%", "%25", "\n", "%0A", "\r", "%0D")

// Escape encodes a value so it survives the single-line key=value format.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Writer records named output values for the invoking workflow.
type Writer struct {
	// Path is the file named by $GITHUB_OUTPUT. Empty means the legacy
	// ::set-output command is written to Stdout instead.
	Path   string
	Stdout io.Writer
}

// NewWriter returns a Writer configured from the process environment.
func NewWriter() *Writer {
	return &Writer{
		Path:   os.Getenv(OutputEnv),
		Stdout: os.Stdout,
	}
}

// SetOutput appends name=value to the output file, or prints the legacy
// workflow command when no output file is configured.
func (w *Writer) SetOutput(name, value string) (err error) {
	if name == "" {
		return errors.New("output name must not be empty")
	}

	escaped := Escape(value)

	if w.Path == "" {
		out := w.Stdout
		if out == nil {
			out = os.Stdout
		}

		_, err = fmt.Fprintf(out, "::set-output name=%s::%s\n", name, escaped)

		return err
	}

	f, err := os.OpenFile(w.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) // #nosec G302 G304 - path is provided by the runner
	if err != nil {
		return fmt.Errorf("opening %s: %w", OutputEnv, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing %s: %w", OutputEnv, cerr))
		}
	}()

	if _, err = fmt.Fprintf(f, "%s=%s\n", name, escaped); err != nil {
		return fmt.Errorf("writing output %q: %w", name, err)
	}

	return nil
}
