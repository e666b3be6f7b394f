package evidence

// Category is the exclusive provenance bucket of one entity.
type Category string

const (
	// CategoryPID marks entities with at least one persistent identifier.
	CategoryPID Category = "PID"
	// CategoryTrustedHost marks entities whose best evidence is a link to a
	// configured trusted host.
	CategoryTrustedHost Category = "TrustedHost"
	// CategoryOtherLink marks entities with only untrusted links.
	CategoryOtherLink Category = "OtherLink"
	// CategoryNone marks entities without any evidence URL.
	CategoryNone Category = "None"
)

// rule pairs a predicate with the category it assigns. Rules are evaluated
// in order; the first match wins.
type rule struct {
	label Category
	match func(urls []string) bool
}

// Categorize assigns exactly one category per entity under the fixed
// precedence PID > TrustedHost > OtherLink > None.
func Categorize(urls []string, hosts HostSet) Category {
	rules := []rule{
		{CategoryPID, HasPID},
		{CategoryTrustedHost, func(u []string) bool { return HasTrusted(u, hosts) }},
		{CategoryOtherLink, HasAny},
	}
	for _, r := range rules {
		if r.match(urls) {
			return r.label
		}
	}
	return CategoryNone
}
