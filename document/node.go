package document

import (
	"slices"
	"strconv"
)

//go:generate go tool stringer -type=Kind -trimprefix=Kind

// Kind identifies which variant of the document union a Node holds.
type Kind uint8

const (
	// KindUndefined is reported for a nil *Node.
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Node is a single JSON value.
type Node struct {
	kind   Kind
	fields []Field
	items  []*Node
	str    string // string value, or number literal
	b      bool
}

// Field is one member of an object.
type Field struct {
	Key   string
	Value *Node
}

// F is shorthand for Field{Key: key, Value: value}.
func F(key string, value *Node) Field {
	return Field{Key: key, Value: value}
}

// Object builds an object node from fields in order.
// A repeated key keeps its first position and takes the last value.
func Object(fields ...Field) *Node {
	out := make([]Field, 0, len(fields))
	seen := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := seen[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		seen[f.Key] = len(out)
		out = append(out, f)
	}
	return &Node{kind: KindObject, fields: out}
}

// Array builds an array node from items in order.
func Array(items ...*Node) *Node {
	return &Node{kind: KindArray, items: slices.Clone(items)}
}

// String builds a string node.
func String(s string) *Node {
	return &Node{kind: KindString, str: s}
}

// Number builds a number node from a JSON number literal such as "42" or "1.5e3".
// The literal is kept verbatim.
func Number(literal string) *Node {
	return &Node{kind: KindNumber, str: literal}
}

// Int builds a number node from an integer.
func Int(v int64) *Node {
	return Number(strconv.FormatInt(v, 10))
}

// Float builds a number node from a float.
func Float(v float64) *Node {
	return Number(strconv.FormatFloat(v, 'g', -1, 64))
}

// Bool builds a boolean node.
func Bool(v bool) *Node {
	return &Node{kind: KindBool, b: v}
}

// Null builds a null node.
func Null() *Node {
	return &Node{kind: KindNull}
}

// Kind returns the variant held by n, or KindUndefined when n is nil.
func (n *Node) Kind() Kind {
	if n == nil {
		return KindUndefined
	}
	return n.kind
}

// IsObject reports whether n is an object.
func (n *Node) IsObject() bool { return n.Kind() == KindObject }

// IsArray reports whether n is an array.
func (n *Node) IsArray() bool { return n.Kind() == KindArray }

// Len returns the number of members of an object or elements of an array,
// and 0 for anything else.
func (n *Node) Len() int {
	switch n.Kind() {
	case KindObject:
		return len(n.fields)
	case KindArray:
		return len(n.items)
	default:
		return 0
	}
}

// Lookup returns the member stored under key and whether it exists.
func (n *Node) Lookup(key string) (*Node, bool) {
	if n.Kind() != KindObject {
		return nil, false
	}
	for _, f := range n.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Get returns the member stored under key, or nil.
func (n *Node) Get(key string) *Node {
	v, _ := n.Lookup(key)
	return v
}

// Has reports whether an object has a member named key.
func (n *Node) Has(key string) bool {
	_, ok := n.Lookup(key)
	return ok
}

// Keys returns the member names of an object in order.
func (n *Node) Keys() []string {
	if n.Kind() != KindObject {
		return nil
	}
	keys := make([]string, len(n.fields))
	for i, f := range n.fields {
		keys[i] = f.Key
	}
	return keys
}

// Fields returns a copy of the members of an object in order.
func (n *Node) Fields() []Field {
	if n.Kind() != KindObject {
		return nil
	}
	return slices.Clone(n.fields)
}

// Index returns element i of an array, or nil when i is out of range.
func (n *Node) Index(i int) *Node {
	if n.Kind() != KindArray || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// Items returns a copy of the elements of an array.
func (n *Node) Items() []*Node {
	if n.Kind() != KindArray {
		return nil
	}
	return slices.Clone(n.items)
}

// StringValue returns the value of a string node.
func (n *Node) StringValue() (string, bool) {
	if n.Kind() != KindString {
		return "", false
	}
	return n.str, true
}

// NumberLiteral returns the literal text of a number node.
func (n *Node) NumberLiteral() (string, bool) {
	if n.Kind() != KindNumber {
		return "", false
	}
	return n.str, true
}

// Float64 returns the value of a number node as a float64.
func (n *Node) Float64() (float64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.str, 64)
	return f, err == nil
}

// Int64 returns the value of a number node when it is an integer that fits in an int64.
func (n *Node) Int64() (int64, bool) {
	if n.Kind() != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(n.str, 10, 64)
	return i, err == nil
}

// BoolValue returns the value of a boolean node.
func (n *Node) BoolValue() (bool, bool) {
	if n.Kind() != KindBool {
		return false, false
	}
	return n.b, true
}

// String renders n as compact JSON. An undefined node renders as "undefined".
func (n *Node) String() string {
	if n == nil {
		return "undefined"
	}
	data, err := n.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(data)
}
