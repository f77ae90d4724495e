// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package nearby

import (
	"math"
	"strconv"
	"strings"
)

// formatKm rounds to two decimals and drops trailing zeros, 12.5 not 12.50.
func formatKm(d float64) string {
	return strconv.FormatFloat(math.Round(d*100)/100, 'f', -1, 64)
}

// Format renders one markdown list item per match:
//
//	- **Berlin** (~12.34 km away) - https://community.cncf.io/cloud-native-berlin/
//
// No matches render as the empty string.
func Format(matches []Match) string {
	lines := make([]string, 0, len(matches))

	for _, m := range matches {
		lines = append(lines, "- **"+m.Chapter.Name+"** (~"+formatKm(m.DistanceKm)+" km away) - "+m.Chapter.URL)
	}

	return strings.Join(lines, "\n")
}
