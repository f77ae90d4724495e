// Copyright 2026 The Community Groups Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/CrisNevares/communitygroups/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
