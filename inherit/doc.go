// Package inherit resolves "$extends" inheritance between JSON documents.
//
// An object that holds a "$extends" member is replaced by the document the
// member references, merged with the object itself:
//
//	{"$extends": "https://example.com/heroes.json#members[1]", "age": 34}
//
// A reference is a locator, optionally followed by '#' and a path in the
// syntax of package query. The locator is handed to a [Requester], and the
// path selects a sub-document of what it returns. The selected document has
// its own references resolved before it is merged, so chains of any length
// are followed. Merging follows package merger, which also drops the
// "$extends" member from the result.
//
// # Quick Start
//
//	doc, err := inherit.Parse(ctx, `{"$extends": "base.json", "name": "child"}`,
//	    inherit.WithBaseDir("configs"),
//	)
//
// # Retrieval
//
// By default http and https locators are fetched with a GET request and any
// other locator is read from the local filesystem. [WithRequester] and
// [WithRequestFunc] replace the default, for example to serve documents from
// memory in tests. Failures of the requester are reported as
// *jferrors.RetrievalError.
//
// # Options
//
//   - [WithRequester], [WithRequestFunc]: replace the default requester
//   - [WithHTTPClient], [WithUserAgent]: configure remote retrieval
//   - [WithMaxDocumentSize]: cap the size of each retrieved document
//   - [WithLocalFiles], [WithBaseDir]: control local file retrieval
//   - [WithMaxDepth]: bound reference chains
//   - [WithLogger]: receive debug logs of each reference loaded
//
// # Cycles
//
// References are not checked for cycles. Use [WithMaxDepth] to bound how many
// references may be chained when documents come from untrusted sources.
package inherit
