// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs identify projects and categories in URLs (e.g., "half-life-2",
// "bilim-kurgu"). This package handles normalization, accent removal, and
// character sanitization.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of non-alphanumeric, non-hyphen characters.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)

	// letters without a canonical decomposition into an ASCII base.
	undecomposable = strings.NewReplacer(
		"ı", "i", "İ", "i",
		"ß", "ss",
		"æ", "ae", "Æ", "ae",
		"ø", "o", "Ø", "o",
		"ł", "l", "Ł", "l",
		"đ", "d", "Đ", "d",
		"&", "-and-",
	)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Maps letters NFD cannot decompose (ı, ß, ø...) to ASCII.
// 2. Normalizes to NFD and removes combining marks (é → e).
// 3. Converts to lowercase.
// 4. Replaces non-alphanumeric characters with hyphens.
// 5. Collapses multiple hyphens and trims leading/trailing hyphens.
func From(s string) string {
	result := undecomposable.Replace(s)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ = transform.String(t, result)

	result = strings.ToLower(result)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, result)

	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// identifierStrip removes everything an upload identifier may not contain.
var identifierStrip = regexp.MustCompile(`[^a-z0-9_-]+`)

// Identifier folds s into a storage-safe file name stem.
//
// Unlike [From] it keeps underscores and drops (rather than hyphenates)
// punctuation: "Half-Life 2: Episode_One" becomes "half-life-2-episode_one".
func Identifier(s string) string {
	result := undecomposable.Replace(strings.TrimSpace(s))

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ = transform.String(t, result)

	result = strings.Join(strings.Fields(strings.ToLower(result)), "-")
	return identifierStrip.ReplaceAllString(result, "")
}
