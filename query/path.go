package query

import (
	"strconv"

	"github.com/erraggy/jfather/jferrors"
)

// Path is a parsed path expression.
type Path struct {
	raw      string
	segments []Segment
}

// String returns the original path expression.
func (p *Path) String() string {
	return p.raw
}

// Segments returns a copy of the parsed segments.
func (p *Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// Segment is a single step of a Path.
type Segment interface {
	// key returns the property name the segment reads, for error reporting.
	key() string
}

// PropertySegment selects an object member (.name).
type PropertySegment struct {
	Name string
}

func (s PropertySegment) key() string { return s.Name }

// IndexSegment selects an array element ([n]).
type IndexSegment struct {
	// Digits is the index as written in the path
	Digits string
	// Index is the numeric index, or -1 when Digits does not fit in an int
	Index int
}

func (s IndexSegment) key() string { return s.Digits }

// Parse parses a path expression.
//
// Examples:
//
//	Parse("")                  // the whole document
//	Parse(".members[1].name")
//	Parse("members[1]")        // same as ".members[1]"
//	Parse("[0]")
func Parse(path string) (*Path, error) {
	p := &parser{input: normalize(path)}
	segments, ok := p.parse()
	if !ok {
		return nil, &jferrors.InvalidPathError{Path: path, Offset: p.pos}
	}
	return &Path{raw: path, segments: segments}, nil
}

// normalize adds the implicit leading dot.
func normalize(path string) string {
	if path == "" || path[0] == '.' || path[0] == '[' {
		return path
	}
	return "." + path
}

// parser is the internal path tokenizer.
type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]Segment, bool) {
	var segments []Segment
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '.':
			p.pos++
			name := p.scan(isIdentByte)
			if name == "" {
				return nil, false
			}
			segments = append(segments, PropertySegment{Name: name})

		case '[':
			p.pos++
			digits := p.scan(isDigit)
			if digits == "" || p.pos >= len(p.input) || p.input[p.pos] != ']' {
				return nil, false
			}
			p.pos++
			segments = append(segments, IndexSegment{Digits: digits, Index: atoi(digits)})

		default:
			return nil, false
		}
	}
	return segments, true
}

// scan consumes the longest run of bytes accepted by ok.
func (p *parser) scan(ok func(byte) bool) string {
	start := p.pos
	for p.pos < len(p.input) && ok(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentByte(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// atoi returns the value of a digit run, or -1 when it overflows int.
func atoi(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return -1
	}
	return n
}
