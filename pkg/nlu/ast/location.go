package ast

import "fmt"

// Location is a position in a model file. Line and Column are 1-based;
// a zero Line means only the file is known.
type Location struct {
	File   string
	Line   int
	Column int
}

// String formats the location as "file:line:column", or just the file
// when no line is known.
func (l Location) String() string {
	switch {
	case l.File == "":
		return "<unknown>"
	case l.Line == 0:
		return l.File
	default:
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
}

// IsValid reports whether the location points at a line of a file.
func (l Location) IsValid() bool {
	return l.File != "" && l.Line > 0
}
