// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/repl-float/main.go
// Summary: Minimal menu-loop demo: parse each line as a float and echo it.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/boxdyn/repline"
)

func main() {
	err := repline.ReadAnd("\x1b[33m", "  >", " ?>", func(line string) (repline.Response, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
		if err != nil {
			return repline.Deny, err
		}
		fmt.Printf("-> %v\r\n", v)
		return repline.Accept, nil
	})
	if err != nil {
		panic(err)
	}
}
