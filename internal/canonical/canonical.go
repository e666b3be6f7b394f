// Package canonical provides the string canonicalization keys used to
// deduplicate dataset name mentions at increasing matching strengths.
package canonical

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// Exact trims the name and collapses internal whitespace runs to single
// spaces. Case and punctuation are preserved. The empty string maps to
// itself.
func Exact(name string) string {
	return collapseSpace(name)
}

// Norm lowercases the name, collapses all Unicode whitespace (including
// non-breaking spaces) and strips light punctuation: quotes, periods,
// commas, semicolons and colons. Parentheses and hyphens are kept so
// qualified names stay distinguishable.
func Norm(name string) string {
	if name == "" {
		return ""
	}
	s := lower.String(collapseSpace(name))
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`', '“', '”', '‘', '’', '.', ',', ';', ':':
			return -1
		}
		return r
	}, s)
	return collapseSpace(s)
}

// FuzzyKey reduces the name to the alphabet used for fuzzy similarity: the
// Norm form with every rune outside [a-z0-9 ] removed.
func FuzzyKey(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			return r
		}
		return -1
	}, Norm(name))
}

// collapseSpace splits on Unicode whitespace and rejoins with single
// spaces, which trims and collapses in one pass.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
