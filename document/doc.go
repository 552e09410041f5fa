// Package document defines the JSON document model shared by every jfather
// package.
//
// A document is a *[Node]: a tagged union whose [Kind] is one of Object,
// Array, String, Number, Bool or Null. A nil *Node stands for an undefined
// (absent) value, so lookups of missing members simply return nil and every
// method is safe to call on it.
//
// Objects keep their members in insertion order. Numbers keep the literal
// text they were decoded from, which means a decode/encode round trip never
// changes precision or formatting.
//
// Nodes are immutable once built: accessors return copies of internal slices
// and all jfather operations build new containers rather than editing their
// inputs.
//
// # Decoding and Encoding
//
// [Decode] accepts JSON text and, since JSON is a subset of YAML, YAML text
// as well. Both are read through go.yaml.in/yaml/v4 node trees so that object
// key order survives:
//
//	doc, err := document.Decode([]byte(`{"b": 1, "a": [true, null]}`))
//	out, _ := json.Marshal(doc) // {"b":1,"a":[true,null]}
//
// *Node implements json.Marshaler, json.Unmarshaler and yaml.Marshaler.
package document
