package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/jfather/jferrors"
	"go.yaml.in/yaml/v4"
)

// Decode parses JSON (or YAML) text into a document, preserving object key order.
func Decode(data []byte) (*Node, error) {
	return DecodeNamed("", data)
}

// DecodeNamed is like Decode but records source as the origin of the text in
// any returned *jferrors.ParseError.
//
// Text that starts with '{' or '[' is decoded as a single JSON value; content
// after that value is an error. Other valid JSON is decoded the same way and
// anything else is read as YAML.
func DecodeNamed(source string, data []byte) (*Node, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &jferrors.ParseError{Path: source, Message: "empty document"}
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		n, complete, err := decodeJSON(source, data)
		if err == nil || complete {
			return n, err
		}
		// YAML flow collections start the same way
		if n, yerr := decodeYAML(source, data); yerr == nil {
			return n, nil
		}
		return nil, err
	}
	if json.Valid(data) {
		n, _, err := decodeJSON(source, data)
		return n, err
	}
	return decodeYAML(source, data)
}

// decodeJSON reads exactly one JSON value from data. complete reports whether
// a whole value was read, so that a failure is known to come from trailing
// content.
func decodeJSON(source string, data []byte) (n *Node, complete bool, err error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	n, err = readJSON(dec)
	if err != nil {
		return nil, false, jsonParseError(source, data, err)
	}

	offset := dec.InputOffset()
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		line, col := position(data, offset)
		return nil, true, &jferrors.ParseError{
			Path:    source,
			Line:    line,
			Column:  col,
			Message: "unexpected content after the document",
		}
	}
	return n, true, nil
}

// readJSON reads the next value from dec.
func readJSON(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
				}
				value, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				fields = append(fields, Field{Key: key, Value: value})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return Object(fields...), nil

		case '[':
			items := []*Node{}
			for dec.More() {
				item, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return &Node{kind: KindArray, items: items}, nil

		default:
			return nil, fmt.Errorf("unexpected %q", rune(v))
		}

	case string:
		return String(v), nil
	case json.Number:
		// out-of-range literals such as 1e999 stay numbers
		return Number(string(v)), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func jsonParseError(source string, data []byte, err error) *jferrors.ParseError {
	perr := &jferrors.ParseError{Path: source, Cause: err}
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) {
		perr.Line, perr.Column = position(data, syntax.Offset)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		perr.Cause = nil
		perr.Message = "unexpected end of document"
	}
	return perr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1) + 1
	return line, col
}

func decodeYAML(source string, data []byte) (*Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &jferrors.ParseError{Path: source, Cause: err}
	}
	n, err := FromYAML(&root)
	if err != nil {
		var perr *jferrors.ParseError
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = source
		}
		return nil, err
	}
	return n, nil
}

// FromYAML converts a yaml.Node tree into a document.
func FromYAML(node *yaml.Node) (*Node, error) {
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, &jferrors.ParseError{Line: node.Line, Column: node.Column, Message: "empty document"}
		}
		return FromYAML(node.Content[0])

	case yaml.MappingNode:
		fields := make([]Field, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode := node.Content[i]
			if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
				keyNode = keyNode.Alias
			}
			if keyNode.Kind != yaml.ScalarNode {
				return nil, &jferrors.ParseError{
					Line:    keyNode.Line,
					Column:  keyNode.Column,
					Message: "object keys must be scalars",
				}
			}
			value, err := FromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Key: keyNode.Value, Value: value})
		}
		return Object(fields...), nil

	case yaml.SequenceNode:
		items := make([]*Node, len(node.Content))
		for i, child := range node.Content {
			item, err := FromYAML(child)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return &Node{kind: KindArray, items: items}, nil

	case yaml.AliasNode:
		return FromYAML(node.Alias)

	case yaml.ScalarNode:
		return scalarFromYAML(node)

	default:
		return nil, &jferrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind),
		}
	}
}

func scalarFromYAML(node *yaml.Node) (*Node, error) {
	switch node.ShortTag() {
	case "!!null":
		return Null(), nil

	case "!!bool":
		return Bool(strings.EqualFold(node.Value, "true")), nil

	case "!!int", "!!float":
		literal, err := numberLiteral(node.Value)
		if err != nil {
			return nil, &jferrors.ParseError{Line: node.Line, Column: node.Column, Message: err.Error()}
		}
		return Number(literal), nil

	default:
		// !!str, !!binary, !!timestamp and custom tags all keep their text
		return String(node.Value), nil
	}
}

// numberLiteral returns a JSON number literal for a YAML int or float scalar.
// JSON-shaped input is kept verbatim; YAML-only spellings are normalized.
func numberLiteral(v string) (string, error) {
	if isJSONNumber(v) {
		return v, nil
	}

	clean := strings.ReplaceAll(v, "_", "")
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	if u, err := strconv.ParseUint(clean, 0, 64); err == nil {
		return strconv.FormatUint(u, 10), nil
	}

	switch strings.ToLower(strings.TrimPrefix(clean, "+")) {
	case ".inf", "-.inf", ".nan":
		return "", fmt.Errorf("number %q cannot be represented in JSON", v)
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return "", fmt.Errorf("invalid number %q", v)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("number %q cannot be represented in JSON", v)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func isJSONNumber(v string) bool {
	if v == "" {
		return false
	}
	if c := v[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(v))
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Node) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}
