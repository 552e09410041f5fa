// Package merger deep-merges a child JSON document onto a parent.
//
// # Merge Rules
//
// When both operands are objects, the result holds the union of their
// members: parent keys first in parent order, then keys that only the child
// has, in child order. A member present on both sides is merged recursively
// and a member present on one side is copied. Keys starting with '$' are
// directives and never appear in the output. In every other case the result
// is a copy of the child, so arrays and scalars replace what the parent had.
//
// # Array Overrides
//
// After a member has been merged, if its value is an array the child may
// patch it with override directives:
//
//	"$name[n]"  merges the directive value into element n of "name"
//	"$name[]"   appends the elements of the directive value to "name"
//
// Directives are applied in the order they appear in the child. Directives
// that target a non-array member are ignored.
//
//	parent: {"foo": ["bar", "baz"]}
//	child:  {"$foo[0]": "qux", "$foo[]": ["quux"]}
//	result: {"foo": ["qux", "baz", "quux"]}
package merger
