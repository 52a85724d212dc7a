// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package textnorm canonicalises user-supplied text before it is stored or
// compared.
//
// # Usage
//
// Emails are login identities and CPFs are unique keys, so two spellings of
// the same value must collapse to one canonical form before any lookup.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Email trims surrounding whitespace, applies NFC and lowercases the address.
//
// The local part is case-folded as well; the helpdesk never issues two
// accounts that differ only by case.
func Email(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}

// Name applies NFC and collapses every run of whitespace into one space.
func Name(s string) string {
	return strings.Join(strings.Fields(norm.NFC.String(s)), " ")
}

// Digits keeps only the decimal digits of s ("529.982.247-25" → "52998224725").
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// Text applies NFC and trims surrounding whitespace, keeping inner layout.
func Text(s string) string {
	return strings.TrimFunc(norm.NFC.String(s), unicode.IsSpace)
}
