// Package splitter cuts raw markdown into the candidate blocks converted one
// at a time. Each line becomes a block except fenced code spans and pipe
// tables, which are re-joined so the parser sees them whole.
package splitter

import "strings"

const (
	fenceMarker = "```"
	// MinTableLines is the shortest pipe-delimited run treated as a table.
	// Shorter runs are more likely stray lines than tables.
	MinTableLines = 4
)

type state uint8

const (
	stateNormal state = iota
	stateInFence
	stateInTable
)

// Split returns the ordered block strings for markdown.
func Split(markdown string) []string {
	lines := strings.Split(normalizeNewlines(markdown), "\n")
	s := &scanner{lines: lines, lastFence: -1}
	for i, line := range lines {
		if isFence(line) {
			s.lastFence = i
		}
	}
	return s.run()
}

type scanner struct {
	lines     []string
	out       []string
	buffer    []string
	state     state
	lastFence int
}

func (s *scanner) run() []string {
	for i := 0; i < len(s.lines); i++ {
		line := s.lines[i]
		switch s.state {
		case stateInFence:
			s.buffer = append(s.buffer, line)
			if isFence(line) {
				s.emitJoined()
				s.state = stateNormal
			}
		case stateInTable:
			if isTableRow(line) {
				s.buffer = append(s.buffer, line)
				continue
			}
			s.flushTable()
			i--
		default:
			switch {
			case isFence(line) && s.hasClosingFence(i+1):
				s.buffer = append(s.buffer[:0], line)
				s.state = stateInFence
			case isTableRow(line):
				s.buffer = append(s.buffer[:0], line)
				s.state = stateInTable
			default:
				s.out = append(s.out, line)
			}
		}
	}
	if s.state == stateInTable {
		s.flushTable()
	}
	return s.out
}

func (s *scanner) hasClosingFence(from int) bool {
	return s.lastFence >= from
}

func (s *scanner) emitJoined() {
	s.out = append(s.out, strings.Join(s.buffer, "\n"))
	s.buffer = s.buffer[:0]
}

// flushTable closes a pipe run, joining it when it is long enough.
func (s *scanner) flushTable() {
	if len(s.buffer) >= MinTableLines {
		s.emitJoined()
	} else {
		s.out = append(s.out, s.buffer...)
		s.buffer = s.buffer[:0]
	}
	s.state = stateNormal
}

func isFence(line string) bool {
	return line == fenceMarker
}

// isTableRow matches lines of the form |...|.
func isTableRow(line string) bool {
	return len(line) > 1 &&
		strings.HasPrefix(line, "|") &&
		strings.HasSuffix(line, "|") &&
		!strings.Contains(line, "\n")
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	return strings.ReplaceAll(s, "\r\n", "\n")
}
