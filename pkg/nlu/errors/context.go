package errors

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"mercator-hq/modellint/pkg/nlu/ast"
)

// SnippetRadius is the number of source lines shown on each side of an
// error location.
const SnippetRadius = 2

// Snippet renders the lines of src within radius of loc with a gutter of
// line numbers. The line at loc is marked with '>' and followed by a caret
// under loc.Column. It returns "" when loc has no line or lies past the end
// of src.
func Snippet(src []byte, loc ast.Location, radius int) string {
	if loc.Line <= 0 {
		return ""
	}
	lines := bytes.Split(bytes.TrimSuffix(src, []byte("\n")), []byte("\n"))
	target := loc.Line - 1
	if target >= len(lines) {
		return ""
	}

	first, last := max(target-radius, 0), min(target+radius, len(lines)-1)
	width := len(strconv.Itoa(last + 1))

	var b strings.Builder
	for i := first; i <= last; i++ {
		mark := ' '
		if i == target {
			mark = '>'
		}
		fmt.Fprintf(&b, "%c %*d | %s\n", mark, width, i+1, bytes.TrimRight(lines[i], "\r"))
		if i == target && loc.Column > 0 {
			fmt.Fprintf(&b, "  %*s | %s^\n", width, "", strings.Repeat(" ", loc.Column-1))
		}
	}
	return b.String()
}

// Attach sets the snippet of e from src, the source e points into.
func (e *Error) Attach(src []byte) *Error {
	e.Context = Snippet(src, e.Location, SnippetRadius)
	return e
}

// Attach sets the snippet of every error in the list from src.
func (el *ErrorList) Attach(src []byte) {
	for _, e := range el.Errors {
		e.Attach(src)
	}
}
