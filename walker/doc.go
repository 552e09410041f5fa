// Package walker provides bottom-up traversal of JSON documents.
//
// Both walks rebuild every container they pass through, so the input is never
// modified. Object members are visited before the object that holds them and
// the visit function is applied to objects only. Arrays are rebuilt element by
// element and scalars are returned as they are.
//
// # Quick Start
//
// Stamp every object in a document with a marker:
//
//	out := walker.Walk(doc, func(n *document.Node) *document.Node {
//	    return document.Object(append(n.Fields(), document.F("seen", document.Bool(true)))...)
//	})
//
// # Concurrent Walks
//
// [WalkAsync] resolves all members of an object, and all elements of an
// array, concurrently. The visit function may block (for example on network
// I/O). Results are placed by index, so the output order always matches the
// input order regardless of completion order. The first error cancels the
// context given to the remaining visits and is returned.
package walker
