// Package jfather resolves inheritance and array overrides in JSON documents.
//
// A document may name another document it builds upon with a "$extends"
// member, and patch inherited arrays with "$name[index]" and "$name[]"
// members. Resolution fetches every referenced document, resolves its own
// references, and deep-merges the pieces into a single document.
//
// # Packages
//
//   - document: ordered JSON value model with decoding and encoding
//   - walker: bottom-up traversal, sequential or concurrent
//   - query: the ".name[index]" path language used in reference fragments
//   - merger: deep merge with array override directives
//   - inherit: "$extends" resolution with a pluggable Requester
//   - jferrors: sentinel and typed errors shared by all packages
//
// # Quick Start
//
//	doc, err := inherit.Parse(ctx, `{
//	    "$extends": "https://mdn.github.io/learning-area/javascript/oojs/json/superheroes.json#members[1]",
//	    "age": 34
//	}`)
//
// # Command Line
//
// The jfather command exposes the same operations:
//
//	jfather extend config.json
//	jfather merge base.json override.json
//	jfather query heroes.json 'members[1].name'
//	jfather mcp
//
// The mcp subcommand serves merge, query and extend as tools over the Model
// Context Protocol on stdio.
package jfather
