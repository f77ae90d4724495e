// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package directory

// Major chapters, used when every remote strategy fails. These carry no
// coordinates and are geocoded by name.
var staticChapters = []Chapter{
	{Name: "San Francisco", URL: "https://community.cncf.io/cloud-native-san-francisco/"},
	{Name: "New York City", URL: "https://community.cncf.io/cloud-native-new-york-city/"},
	{Name: "London", URL: "https://community.cncf.io/cloud-native-london/"},
	{Name: "Berlin", URL: "https://community.cncf.io/cloud-native-berlin/"},
	{Name: "Amsterdam", URL: "https://community.cncf.io/cloud-native-amsterdam/"},
	{Name: "Paris", URL: "https://community.cncf.io/cloud-native-paris/"},
	{Name: "Tokyo", URL: "https://community.cncf.io/cloud-native-community-japan/"},
	{Name: "Bangalore", URL: "https://community.cncf.io/cloud-native-bangalore/"},
	{Name: "Sydney", URL: "https://community.cncf.io/cloud-native-sydney/"},
	{Name: "Singapore", URL: "https://community.cncf.io/cloud-native-singapore/"},
}

// StaticChapters returns a copy of the built-in chapter list.
func StaticChapters() []Chapter {
	ret := make([]Chapter, len(staticChapters))
	copy(ret, staticChapters)

	return ret
}
