package inlinehtml

import (
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

// Marker describes an inline HTML tag that maps onto an inline style. When
// AttributeKey is set the element must also carry that attribute with
// AttributeValue.
type Marker struct {
	Tag            string
	AttributeKey   string
	AttributeValue string
	Style          string
	CloseTag       string
}

// DefaultMarkers returns a fresh copy of the built-in registry.
func DefaultMarkers() []Marker {
	return []Marker{
		{Tag: "ins", Style: "UNDERLINE", CloseTag: "</ins>"},
		{Tag: "span", AttributeKey: "color", AttributeValue: "red", Style: "red", CloseTag: "</span>"},
	}
}

// Matches reports whether doc contains an element satisfying the marker.
func (m Marker) Matches(doc interfaces.HTMLDocument) bool {
	el, ok := doc.First(m.Tag)
	if !ok {
		return false
	}
	if m.AttributeKey == "" {
		return true
	}
	value, ok := el.Attr(m.AttributeKey)
	return ok && value == m.AttributeValue
}

// Stack tracks markers opened and not yet closed within a block. The zero
// value is an empty stack.
type Stack struct {
	open []Marker
}

// Push records an opened marker.
func (s *Stack) Push(m Marker) {
	s.open = append(s.open, m)
}

// Close pops the most recently opened marker whose close tag equals value.
// It reports whether a marker was closed.
func (s *Stack) Close(value string) bool {
	for i := len(s.open) - 1; i >= 0; i-- {
		if s.open[i].CloseTag == value {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return true
		}
	}
	return false
}

// Styles returns the styles of every open marker, oldest first.
func (s *Stack) Styles() []string {
	if len(s.open) == 0 {
		return nil
	}
	styles := make([]string, len(s.open))
	for i, m := range s.open {
		styles[i] = m.Style
	}
	return styles
}

// Len returns the number of open markers.
func (s *Stack) Len() int {
	return len(s.open)
}

// Matcher tests raw HTML fragments against a registry.
type Matcher struct {
	query   interfaces.HTMLQuery
	markers []Marker
}

// NewMatcher builds a matcher. A nil query selects the x/net/html backend and
// a nil registry the defaults.
func NewMatcher(query interfaces.HTMLQuery, markers []Marker) *Matcher {
	if query == nil {
		query = NewQuery()
	}
	if markers == nil {
		markers = DefaultMarkers()
	}
	return &Matcher{
		query:   query,
		markers: append([]Marker(nil), markers...),
	}
}

// Open returns every registry marker the fragment opens. Unparseable
// fragments open nothing.
func (m *Matcher) Open(fragment string) []Marker {
	doc, err := m.query.Query(fragment)
	if err != nil {
		return nil
	}
	var opened []Marker
	for _, marker := range m.markers {
		if marker.Matches(doc) {
			opened = append(opened, marker)
		}
	}
	return opened
}
