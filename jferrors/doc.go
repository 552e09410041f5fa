// Package jferrors provides structured error types for the jfather library.
//
// Import path: github.com/erraggy/jfather/jferrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to tell a malformed fragment path apart from a failed
// retrieval or an undecodable document.
//
// # Error Types
//
//   - [InvalidPathError]: a path or fragment expression could not be consumed by the grammar
//   - [PropertyAccessError]: a path indexed into an undefined or null value
//   - [RetrievalError]: the retrieval capability failed to produce a document
//   - [ParseError]: JSON/YAML text could not be decoded
//   - [ResourceLimitError]: a configured limit (extends depth, document size) was exceeded
//   - [ConfigError]: invalid options
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrInvalidPath]: Matches any [InvalidPathError]
//   - [ErrPropertyAccess]: Matches any [PropertyAccessError]
//   - [ErrRetrieval]: Matches any [RetrievalError]
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	doc, err := inherit.Load(ctx, "https://example.com/base.json#members[1]")
//	if errors.Is(err, jferrors.ErrInvalidPath) {
//	    // the fragment after '#' is malformed
//	}
//
//	var rerr *jferrors.RetrievalError
//	if errors.As(err, &rerr) {
//	    fmt.Printf("could not fetch %s\n", rerr.Locator)
//	}
//
// The core never recovers from any of these locally: the first failure aborts
// the enclosing Extend/Load/Parse/Get call.
package jferrors
