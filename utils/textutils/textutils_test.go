// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLowerAsciiFolding(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello world"},
		{"  Spaces  ", "spaces"},
		{"São  Paulo", "sao paulo"},
		{"Zürich", "zurich"},
		{"Kraków, Poland", "krakow, poland"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, LowerASCIIFolding(tc.input))
		})
	}
}

func TestSlugTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://community.cncf.io/cloud-native-san-francisco/", "Cloud Native San Francisco"},
		{"https://community.cncf.io/cloud-native-berlin", "Cloud Native Berlin"},
		{"/cloud-native-community-japan/", "Cloud Native Community Japan"},
		{"kcd_porto", "Kcd Porto"},
		{"https://community.cncf.io/", ""},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, SlugTitle(tc.input))
		})
	}
}
