// Copyright © 2025 Repline contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/repline-demo/highlight.go
// Summary: Syntax-highlighted echo of submitted snippets.

package main

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
)

const defaultStyleName = "catppuccin-mocha"

// highlight writes text to w with terminal colors. The lexer comes from the
// explicit name when given, then a shebang, then enry's content classifier,
// then Chroma's own analysis, and finally the plaintext fallback.
func highlight(w io.Writer, text, lexerName, styleName string) error {
	lexer := chroma.Coalesce(lexerFor(lexerName, text))
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return err
	}
	if styleName == "" {
		styleName = defaultStyleName
	}
	return formatters.Get("terminal256").Format(w, styles.Get(styleName), it)
}

func lexerFor(name, text string) chroma.Lexer {
	if name != "" {
		if l := lexers.Get(name); l != nil {
			return l
		}
	}
	if lang, ok := enry.GetLanguageByShebang([]byte(text)); ok {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if lang, ok := enry.GetLanguageByClassifier([]byte(text), nil); ok {
		if l := lexers.Get(strings.ToLower(lang)); l != nil {
			return l
		}
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}
