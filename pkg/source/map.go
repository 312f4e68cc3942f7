package source

import (
	"sort"
	"strings"
)

// Anonymous is the display name used for buffers without a file behind them.
const Anonymous = "<stdin>"

// File is a named source buffer plus a lazily built line index.
type File struct {
	ID   ID
	Name string
	Text string

	lineStarts []int
}

// Location is a resolved position. Line is 1-based; Column is a 0-based
// byte offset within the line.
type Location struct {
	Line   int
	Column int
}

// Locate resolves a byte offset to its line and column.
func (f *File) Locate(offset int) Location {
	starts := f.lines()
	offset = clamp(offset, len(f.Text))
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	return Location{Line: idx + 1, Column: offset - starts[idx]}
}

// Line returns the text of the 1-based line n without its newline.
func (f *File) Line(n int) string {
	starts := f.lines()
	if n < 1 || n > len(starts) {
		return ""
	}
	start := starts[n-1]
	end := len(f.Text)
	if n < len(starts) {
		end = starts[n] - 1
	}
	return strings.TrimSuffix(f.Text[start:end], "\r")
}

// LineCount returns the number of lines in the buffer.
func (f *File) LineCount() int {
	return len(f.lines())
}

func (f *File) lines() []int {
	if f.lineStarts != nil {
		return f.lineStarts
	}
	starts := []int{0}
	for i := 0; i < len(f.Text); i++ {
		if f.Text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	f.lineStarts = starts
	return starts
}

// Map registers source buffers so spans can be resolved back to text.
type Map struct {
	files []*File
}

// NewMap returns an empty source registry.
func NewMap() *Map {
	return &Map{}
}

// Add registers a buffer and returns it. IDs start at 1.
func (m *Map) Add(name, text string) *File {
	if strings.TrimSpace(name) == "" {
		name = Anonymous
	}
	file := &File{ID: ID(len(m.files) + 1), Name: name, Text: text}
	m.files = append(m.files, file)
	return file
}

// File looks up a registered buffer.
func (m *Map) File(id ID) (*File, bool) {
	if m == nil || id < 1 || int(id) > len(m.files) {
		return nil, false
	}
	return m.files[id-1], true
}

// Len reports how many buffers have been registered.
func (m *Map) Len() int {
	return len(m.files)
}
