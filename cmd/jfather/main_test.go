package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"extnd", "extend"},
		{"exted", "extend"},
		{"mrege", "merge"},
		{"merg", "merge"},
		{"qeury", "query"},
		{"quer", "query"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"extendination", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("merge", "merge"))
	assert.Equal(t, 3, editDistance("", "mcp"))
	assert.Equal(t, 1, editDistance("query", "quer"))
	assert.Equal(t, 2, editDistance("mrege", "merge"))
}

func TestRun(t *testing.T) {
	assert.Equal(t, 1, run(nil))
	assert.Equal(t, 0, run([]string{"version"}))
	assert.Equal(t, 0, run([]string{"--help"}))
	assert.Equal(t, 1, run([]string{"bogus"}))
	assert.Equal(t, 0, run([]string{"merge", "--help"}))
	assert.Equal(t, 1, run([]string{"merge"}))
}
