package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalJSON implements json.Marshaler, writing object members in order.
// Undefined object members are omitted and undefined array elements are
// written as null.
func (n *Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent is like MarshalJSON but applies json.Indent to the output.
func (n *Node) MarshalJSONIndent(prefix, indent string) ([]byte, error) {
	data, err := n.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *Node) error {
	switch n.Kind() {
	case KindUndefined, KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(n.b))
	case KindNumber:
		if !isJSONNumber(n.str) {
			return fmt.Errorf("document: invalid number literal %q", n.str)
		}
		buf.WriteString(n.str)
	case KindString:
		return writeString(buf, n.str)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range n.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		first := true
		for _, f := range n.fields {
			if f.Value == nil {
				continue
			}
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("document: unknown kind %s", n.Kind())
	}
	return nil
}

// writeString writes s as a JSON string without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// MarshalYAML implements yaml.Marshaler, keeping object member order.
func (n *Node) MarshalYAML() (any, error) {
	return n.ToYAML(), nil
}

// ToYAML converts n into a yaml.Node tree.
func (n *Node) ToYAML() *yaml.Node {
	switch n.Kind() {
	case KindUndefined, KindNull:
		return scalarNode("!!null", "null")
	case KindBool:
		return scalarNode("!!bool", strconv.FormatBool(n.b))
	case KindNumber:
		if strings.ContainsAny(n.str, ".eE") {
			return scalarNode("!!float", n.str)
		}
		return scalarNode("!!int", n.str)
	case KindString:
		return scalarNode("!!str", n.str)
	case KindArray:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: make([]*yaml.Node, 0, len(n.items))}
		for _, item := range n.items {
			node.Content = append(node.Content, item.ToYAML())
		}
		return node
	default:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: make([]*yaml.Node, 0, 2*len(n.fields))}
		for _, f := range n.fields {
			if f.Value == nil {
				continue
			}
			node.Content = append(node.Content, scalarNode("!!str", f.Key), f.Value.ToYAML())
		}
		return node
	}
}

// scalarNode creates a yaml.Node for a scalar value.
func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
