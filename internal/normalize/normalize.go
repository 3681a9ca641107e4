// Package normalize holds the small text helpers shared by the extractors.
package normalize

import (
	"strings"
)

// Text collapses every whitespace run (newlines and NBSP included) to a
// single space and trims both ends.
func Text(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Decimal rewrites comma decimal separators as periods.
func Decimal(s string) string {
	return strings.ReplaceAll(s, ",", ".")
}

// StripSuffix removes the first of suffixes that s ends with.
// Matching is case-sensitive and anchored at the end.
func StripSuffix(s string, suffixes ...string) string {
	for _, suffix := range suffixes {
		if suffix != "" && strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

// Link is an anchor reduced to what disambiguation needs.
type Link struct {
	Href string
	Text string
}

// HrefContainsAny reports whether the link target contains any of markers.
func (l Link) HrefContainsAny(markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(l.Href, m) {
			return true
		}
	}
	return false
}

// FirstLink returns the index of the first link accepted by accept, or -1.
func FirstLink(links []Link, accept func(Link) bool) int {
	return LinkAfter(links, -1, accept)
}

// LinkAfter returns the index of the first link after position from that is
// accepted by accept, or -1.
func LinkAfter(links []Link, from int, accept func(Link) bool) int {
	for i := from + 1; i < len(links); i++ {
		if accept(links[i]) {
			return i
		}
	}
	return -1
}
