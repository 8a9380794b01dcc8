// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from arbitrary strings.
package slug

import (
	"regexp"
	"strings"
)

// maxLen keeps generated slugs well inside the 255-character column.
const maxLen = 100

var (
	// separators become hyphens before anything else is stripped.
	separators = regexp.MustCompile(`[\s_/]+`)
	// nonAlphanumeric matches anything that isn't a letter, digit, or hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)

	// diacritics folds the Latin letters that show up in author names
	// and titles. Anything outside the table is stripped.
	diacritics = strings.NewReplacer(
		"à", "a", "á", "a", "ã", "a", "ä", "a", "å", "a",
		"è", "e", "é", "e", "ê", "e", "ë", "e",
		"ì", "i", "í", "i", "ï", "i",
		"ò", "o", "ó", "o", "ô", "o", "õ", "o", "ö", "o",
		"ù", "u", "ú", "u", "û", "u", "ü", "u",
		"ă", "a", "â", "a", "î", "i", "ș", "s", "ş", "s", "ț", "t", "ţ", "t",
		"ç", "c", "ñ", "n", "ß", "ss",
	)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = diacritics.Replace(result)
	result = separators.ReplaceAllString(result, "-")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > maxLen {
		result = strings.Trim(result[:maxLen], "-")
	}
	return result
}
