package interfaces

// HTMLQuery parses an HTML fragment into a queryable document. It is only
// used to test inline raw HTML against the marker registry, so the surface is
// limited to element lookup and attribute reads.
type HTMLQuery interface {
	Query(fragment string) (HTMLDocument, error)
}

// HTMLDocument is the parsed form of a fragment.
type HTMLDocument interface {
	// First returns the first element in document order with the given tag
	// name, mirroring querySelector(tag).
	First(tag string) (HTMLElement, bool)
}

// HTMLElement exposes attribute reads for a matched element.
type HTMLElement interface {
	Tag() string
	Attr(name string) (string, bool)
}
