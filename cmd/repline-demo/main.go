// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/repline-demo/main.go
// Summary: Interactive demo REPL that echoes accepted input highlighted.
// Usage: go run ./cmd/repline-demo [-lang go] [-style catppuccin-mocha]

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/creack/pty"

	"github.com/boxdyn/repline"
)

func main() {
	lang := flag.String("lang", "", "lexer name; detected from content when empty")
	style := flag.String("style", "", "chroma style name")
	flag.Parse()

	// Setup logging: stdout belongs to the editor, so the log goes to a file.
	logFile, err := os.OpenFile("repline-demo.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		panic(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.Println("Demo starting...")

	if rows, cols, err := pty.Getsize(os.Stdin); err == nil {
		log.Printf("Terminal size: %dx%d", cols, rows)
	}

	fmt.Println("Type a snippet; Enter at the end of the buffer submits it.")
	fmt.Println("Tab indents, arrows navigate, Ctrl+C quits.")

	err = repline.ReadAndMut("\x1b[33m", " .>", " ?>", func(rl *repline.Repline, line string) (repline.Response, error) {
		switch strings.TrimSpace(line) {
		case "":
			return repline.Deny, nil
		case "exit", "quit":
			return repline.Break, nil
		case "history":
			for i, entry := range rl.History() {
				fmt.Printf("%3d  %s\r\n", i+1, strings.ReplaceAll(entry, "\n", "\r\n     "))
			}
			return repline.Deny, nil
		}
		if err := highlight(os.Stdout, line, *lang, *style); err != nil {
			return repline.Continue, err
		}
		log.Printf("Accepted %d characters", len(line))
		return repline.Accept, nil
	})
	if err != nil {
		log.Fatalf("Demo exited with error: %v", err)
	}
	log.Println("Demo stopped cleanly.")
}
