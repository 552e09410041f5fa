// Package query extracts sub-documents with a minimal path language.
//
// A path is a sequence of property and index segments:
//
//	.name      member "name" of an object
//	[3]        element 3 of an array
//
// Identifiers are made of ASCII letters, digits and underscores, and indices
// are runs of decimal digits. A path that starts with neither '.' nor '[' is
// read as if it started with '.', so "members[1].name" and ".members[1].name"
// are equivalent. The empty path selects the whole document.
//
// Reading a segment of an undefined or null value fails with
// *jferrors.PropertyAccessError. Any other miss yields an undefined (nil)
// result.
package query
