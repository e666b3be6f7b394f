// Package evidence classifies the provenance strength of the URL-like
// strings attached to an entity: persistent identifiers, trusted hosts,
// other links, or nothing.
package evidence

import (
	"net/url"
	"regexp"
	"strings"
)

// Persistent identifier patterns: DOI, Handle, ARK. Detection is purely
// pattern based; no resolver is consulted.
var (
	doiRE    = regexp.MustCompile(`(?i)\b10\.\d{4,9}/\S+`)
	handleRE = regexp.MustCompile(`(?i)\b(?:hdl\.)?handle\.net/\S+`)
	arkRE    = regexp.MustCompile(`(?i)\bark:/\S+`)
	schemeRE = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)
)

// HostSet holds the configured provenance-trustworthy hostnames. A URL
// host is trusted when it equals a member or is a subdomain of one.
type HostSet map[string]struct{}

// NewHostSet builds a HostSet from hostnames, lowercased and trimmed.
func NewHostSet(hosts []string) HostSet {
	set := make(HostSet, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.TrimSpace(h))
		if h != "" {
			set[h] = struct{}{}
		}
	}
	return set
}

// ParseHosts builds a HostSet from a semicolon-separated list.
func ParseHosts(list string) HostSet {
	return NewHostSet(strings.Split(list, ";"))
}

// Contains reports whether host matches the set exactly or by suffix.
func (s HostSet) Contains(host string) bool {
	if host == "" {
		return false
	}
	if _, ok := s[host]; ok {
		return true
	}
	for trusted := range s {
		if strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

// Host extracts the lowercased host from a URL-like string, defaulting the
// scheme to https when missing. Malformed input degrades to "" rather than
// an error.
func Host(raw string) string {
	if raw == "" {
		return ""
	}
	if !schemeRE.MatchString(raw) {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Host)
}

// HasAny reports whether at least one non-blank URL string is present.
func HasAny(urls []string) bool {
	for _, u := range urls {
		if strings.TrimSpace(u) != "" {
			return true
		}
	}
	return false
}

// HasPID reports whether any URL matches a DOI, Handle or ARK pattern.
func HasPID(urls []string) bool {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if doiRE.MatchString(u) || handleRE.MatchString(u) || arkRE.MatchString(u) {
			return true
		}
	}
	return false
}

// HasTrusted reports whether any URL carries a PID or resolves to a
// trusted host.
func HasTrusted(urls []string, hosts HostSet) bool {
	if HasPID(urls) {
		return true
	}
	for _, u := range urls {
		if u == "" {
			continue
		}
		if hosts.Contains(Host(u)) {
			return true
		}
	}
	return false
}
