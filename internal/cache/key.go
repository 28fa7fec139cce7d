package cache

import "strings"

// Key addresses one cache entry: a resource name plus parameters, joined
// with "/". Prefix invalidation matches on segment boundaries, so the
// prefix "links" covers "links/true" and "links/false" but not
// "linkstats".
type Key string

// NewKey builds a Key from resource name and parameter segments.
func NewKey(parts ...string) Key {
	return Key(strings.Join(parts, "/"))
}

// HasPrefix reports whether k falls under prefix on a segment boundary.
func (k Key) HasPrefix(prefix Key) bool {
	if k == prefix {
		return true
	}
	return strings.HasPrefix(string(k), string(prefix)+"/")
}
