package merger

import (
	"strings"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/walker"
)

const (
	// DirectivePrefix marks keys that are consumed by the merge and never copied.
	DirectivePrefix = "$"

	// MaxOverrideIndex is the largest index an override directive may target.
	// Directives beyond it are skipped instead of padding the array.
	MaxOverrideIndex = 1 << 20
)

// Merge returns child merged onto parent. Neither argument is modified and
// the result shares no containers with them.
func Merge(parent, child *document.Node) *document.Node {
	if !parent.IsObject() || !child.IsObject() {
		return walker.Clone(child)
	}

	fields := make([]document.Field, 0, parent.Len()+child.Len())
	for _, key := range unionKeys(parent, child) {
		if strings.HasPrefix(key, DirectivePrefix) {
			continue
		}

		pv, inParent := parent.Lookup(key)
		cv, inChild := child.Lookup(key)

		var value *document.Node
		switch {
		case inParent && inChild:
			value = Merge(pv, cv)
		case inParent:
			value = walker.Clone(pv)
		default:
			value = walker.Clone(cv)
		}

		if value.IsArray() {
			value = applyOverrides(key, value, child)
		}
		fields = append(fields, document.F(key, value))
	}
	return document.Object(fields...)
}

// unionKeys returns the parent keys followed by the keys only the child has.
func unionKeys(parent, child *document.Node) []string {
	keys := parent.Keys()
	for _, key := range child.Keys() {
		if !parent.Has(key) {
			keys = append(keys, key)
		}
	}
	return keys
}

// applyOverrides applies the child's directives for key to the merged array.
func applyOverrides(key string, arr, child *document.Node) *document.Node {
	var items []*document.Node
	found := false

	for _, f := range child.Fields() {
		ov, ok := ParseOverride(f.Key)
		if !ok || ov.Property != key {
			continue
		}
		if !found {
			items = arr.Items()
			found = true
		}

		if ov.Append {
			if f.Value.IsArray() {
				for _, item := range f.Value.Items() {
					items = append(items, walker.Clone(item))
				}
			}
			continue
		}

		if ov.Index < 0 || ov.Index > MaxOverrideIndex {
			continue
		}
		for len(items) <= ov.Index {
			items = append(items, document.Null())
		}
		items[ov.Index] = Merge(items[ov.Index], f.Value)
	}

	if !found {
		return arr
	}
	return document.Array(items...)
}
