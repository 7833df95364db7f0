// Package finding provides the symbolic location model for audit findings.
// A finding cites where in a workflow document it applies as a route of
// document keys and indices. Routes are pure data; resolving a route to a
// line and column is the job of the yamlpath package.
package finding

import (
	"strconv"
	"strings"
)

// RouteKey is a single component of a Route: either a mapping key or a
// sequence index.
type RouteKey struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a RouteKey for a mapping key.
func Key(key string) RouteKey {
	return RouteKey{key: key}
}

// Index returns a RouteKey for a sequence index.
func Index(index int) RouteKey {
	return RouteKey{index: index, isIndex: true}
}

// IsIndex reports whether the key addresses a sequence element.
func (k RouteKey) IsIndex() bool {
	return k.isIndex
}

// Index returns the sequence index. It is only meaningful if IsIndex is true.
func (k RouteKey) Index() int {
	return k.index
}

// Key returns the mapping key. It is only meaningful if IsIndex is false.
func (k RouteKey) Key() string {
	return k.key
}

func (k RouteKey) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.key
}

// Route is a path from a document root to a node, expressed as mapping keys
// and sequence indices. The zero value addresses the document root.
type Route struct {
	keys []RouteKey
}

// NewRoute returns a route built from the given keys.
func NewRoute(keys ...RouteKey) Route {
	return Route{keys: keys}
}

// WithKeys returns a new route with the given keys appended. The receiver is
// not modified, so locations derived from a shared parent don't interfere.
func (r Route) WithKeys(keys ...RouteKey) Route {
	combined := make([]RouteKey, 0, len(r.keys)+len(keys))
	combined = append(combined, r.keys...)
	combined = append(combined, keys...)
	return Route{keys: combined}
}

// Keys returns the route's components in order.
func (r Route) Keys() []RouteKey {
	return r.keys
}

func (r Route) String() string {
	parts := make([]string, len(r.keys))
	for i, k := range r.keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, "/")
}
