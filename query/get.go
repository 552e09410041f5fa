package query

import (
	"strconv"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/jferrors"
)

// Get parses path and evaluates it against doc.
func Get(doc *document.Node, path string) (*document.Node, error) {
	p, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return p.Get(doc)
}

// Get evaluates the path against doc. A nil result means the path selects
// nothing.
func (p *Path) Get(doc *document.Node) (*document.Node, error) {
	current := doc
	for _, seg := range p.segments {
		switch current.Kind() {
		case document.KindUndefined, document.KindNull:
			target := "undefined"
			if current.Kind() == document.KindNull {
				target = "null"
			}
			return nil, &jferrors.PropertyAccessError{Path: p.raw, Property: seg.key(), Target: target}
		}
		current = step(current, seg)
	}
	return current, nil
}

// step applies one segment to a defined value.
func step(n *document.Node, seg Segment) *document.Node {
	switch s := seg.(type) {
	case PropertySegment:
		switch n.Kind() {
		case document.KindObject:
			return n.Get(s.Name)
		case document.KindArray:
			// a canonical integer name also addresses an element
			if i, err := strconv.Atoi(s.Name); err == nil && strconv.Itoa(i) == s.Name {
				return n.Index(i)
			}
		}
		return nil

	case IndexSegment:
		switch n.Kind() {
		case document.KindArray:
			if s.Index < 0 {
				return nil
			}
			return n.Index(s.Index)
		case document.KindObject:
			// numeric keys are written in canonical form
			if s.Index < 0 {
				return nil
			}
			return n.Get(strconv.Itoa(s.Index))
		}
		return nil

	default:
		return nil
	}
}
