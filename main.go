// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"github.com/jordanamos/sas-cli/cmd"
)

func main() {
	cmd.Execute()
}
