package finding

// SymbolicLocation cites a place in a workflow document independently of
// line and column information. Name is the workflow's filename, Annotation a
// human-readable description of what the location points at, and Link an
// optional URL with more context.
type SymbolicLocation struct {
	Name       string
	Annotation string
	Link       string
	Route      Route
}

// Annotated returns a copy of the location with the given annotation.
func (l SymbolicLocation) Annotated(annotation string) SymbolicLocation {
	l.Annotation = annotation
	return l
}

// Linked returns a copy of the location with the given link.
func (l SymbolicLocation) Linked(link string) SymbolicLocation {
	l.Link = link
	return l
}

// WithKeys returns a copy of the location whose route has the given keys
// appended.
func (l SymbolicLocation) WithKeys(keys ...RouteKey) SymbolicLocation {
	l.Route = l.Route.WithKeys(keys...)
	return l
}
