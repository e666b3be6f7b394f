package tableio

import (
	"regexp"
	"strings"
)

var headerSpaceRE = regexp.MustCompile(`\s+`)

// normalizeHeaderKey makes header comparison tolerant to case, underscores
// and stray whitespace.
func normalizeHeaderKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", " ")
	return headerSpaceRE.ReplaceAllString(s, " ")
}

// PickFirstColumn resolves an ordered candidate list against a header,
// returning the first candidate present (by normalized comparison) as the
// actual header spelling. The second result reports whether any matched.
func PickFirstColumn(candidates, headers []string) (string, bool) {
	if len(headers) == 0 {
		return "", false
	}
	byKey := make(map[string]string, len(headers))
	for _, h := range headers {
		k := normalizeHeaderKey(h)
		if _, ok := byKey[k]; !ok {
			byKey[k] = h
		}
	}
	for _, cand := range candidates {
		if h, ok := byKey[normalizeHeaderKey(cand)]; ok {
			return h, true
		}
	}
	return "", false
}

// PresentColumns filters a candidate list down to the columns literally
// present in the header, preserving candidate order.
func PresentColumns(candidates, headers []string) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	var out []string
	for _, c := range candidates {
		if _, ok := present[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
