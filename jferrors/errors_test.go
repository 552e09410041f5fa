package jferrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidPathError(t *testing.T) {
	err := &InvalidPathError{Path: ".?foo", Offset: 1}
	assert.Equal(t, "invalid path: .?foo", err.Error())
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.NotErrorIs(t, err, ErrPropertyAccess)

	var target *InvalidPathError
	require.ErrorAs(t, fmt.Errorf("load: %w", err), &target)
	assert.Equal(t, ".?foo", target.Path)
}

func TestPropertyAccessError(t *testing.T) {
	tests := []struct {
		name string
		err  *PropertyAccessError
		want string
	}{
		{
			name: "with path",
			err:  &PropertyAccessError{Path: ".qux.quux", Property: "quux", Target: "undefined"},
			want: "cannot read property 'quux' of undefined in path .qux.quux",
		},
		{
			name: "without path",
			err:  &PropertyAccessError{Property: "0", Target: "null"},
			want: "cannot read property '0' of null",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrPropertyAccess)
		})
	}
}

func TestRetrievalError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &RetrievalError{
		Ref:     "https://example.com/base.json#foo",
		Locator: "https://example.com/base.json",
		Cause:   cause,
	}

	assert.Equal(t, "retrieval error: https://example.com/base.json#foo: connection refused", err.Error())
	assert.ErrorIs(t, err, ErrRetrieval)
	assert.ErrorIs(t, err, cause, "cause must stay reachable")
	assert.Equal(t, cause, err.Unwrap())

	bare := &RetrievalError{Message: "no requester"}
	assert.Equal(t, "retrieval error: no requester", bare.Error())
	assert.NoError(t, bare.Unwrap())
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{"minimal", &ParseError{}, "parse error"},
		{"path only", &ParseError{Path: "base.json"}, "parse error in base.json"},
		{"line only", &ParseError{Line: 10}, "parse error at line 10"},
		{
			"all fields",
			&ParseError{Path: "base.json", Line: 3, Column: 7, Message: "did not find expected node content", Cause: errors.New("boom")},
			"parse error in base.json at line 3, column 7: did not find expected node content: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.ErrorIs(t, tt.err, ErrParse)
			assert.NotErrorIs(t, tt.err, ErrRetrieval)
		})
	}
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "extends_depth", Limit: 10, Actual: 11, Message: "$extends chain too deep"}
	assert.Equal(t, "resource limit exceeded: extends_depth (limit: 10, actual: 11): $extends chain too deep", err.Error())
	assert.ErrorIs(t, err, ErrResourceLimit)

	noActual := &ResourceLimitError{ResourceType: "document_size", Limit: 1024}
	assert.Equal(t, "resource limit exceeded: document_size (limit: 1024)", noActual.Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "WithMaxDepth", Value: -1, Message: "must not be negative"}
	assert.Equal(t, "configuration error for WithMaxDepth (value: -1): must not be negative", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.Equal(t, "configuration error", (&ConfigError{}).Error())
}
