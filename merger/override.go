package merger

import (
	"strconv"
	"strings"
)

// Override is a parsed array override directive.
type Override struct {
	// Property is the name of the array member the directive patches
	Property string
	// Append is true for "$name[]"
	Append bool
	// Digits is the index as written, empty when Append is true
	Digits string
	// Index is the numeric index, or -1 for an append or an index that does
	// not fit in an int
	Index int
}

// ParseOverride parses an object key of the form "$name[digits]" or "$name[]".
// The second result is false for any other key.
func ParseOverride(key string) (Override, bool) {
	if len(key) < 3 || key[0] != '$' || key[len(key)-1] != ']' {
		return Override{}, false
	}
	open := strings.LastIndexByte(key, '[')
	if open < 1 {
		return Override{}, false
	}

	digits := key[open+1 : len(key)-1]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Override{}, false
		}
	}

	ov := Override{Property: key[1:open], Digits: digits, Index: -1}
	if digits == "" {
		ov.Append = true
		return ov, true
	}
	if n, err := strconv.Atoi(digits); err == nil {
		ov.Index = n
	}
	return ov, true
}

// String renders the directive back into its key form.
func (o Override) String() string {
	return "$" + o.Property + "[" + o.Digits + "]"
}
