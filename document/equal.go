package document

import "strconv"

// Equal reports whether a and b are structurally identical documents.
// Object members must appear in the same order. Numbers are equal when their
// literals match or when both parse to the same float64.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.str == b.str
	case KindNumber:
		if a.str == b.str {
			return true
		}
		fa, errA := strconv.ParseFloat(a.str, 64)
		fb, errB := strconv.ParseFloat(b.str, 64)
		return errA == nil && errB == nil && fa == fb
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Key != b.fields[i].Key || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
