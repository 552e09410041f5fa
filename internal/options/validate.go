// Package options provides shared utilities for option validation across packages.
package options

import (
	"fmt"

	"github.com/erraggy/jfather/jferrors"
)

// Source describes one way of supplying a value, by name, and whether the
// caller supplied it.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one of sources is set.
// option names the setting in the returned *jferrors.ConfigError.
func ValidateSingleInputSource(option string, sources ...Source) error {
	set := setNames(sources)
	switch len(set) {
	case 1:
		return nil
	case 0:
		return &jferrors.ConfigError{
			Option:  option,
			Message: fmt.Sprintf("one of %s must be provided", joinNames(sources)),
		}
	default:
		return &jferrors.ConfigError{
			Option:  option,
			Message: fmt.Sprintf("only one of %s may be provided (got %s)", joinNames(sources), joinSources(set)),
		}
	}
}

// ValidateAtMostOneSource ensures no more than one of sources is set.
func ValidateAtMostOneSource(option string, sources ...Source) error {
	set := setNames(sources)
	if len(set) <= 1 {
		return nil
	}
	return &jferrors.ConfigError{
		Option:  option,
		Message: fmt.Sprintf("only one of %s may be provided (got %s)", joinNames(sources), joinSources(set)),
	}
}

func setNames(sources []Source) []string {
	var set []string
	for _, s := range sources {
		if s.Set {
			set = append(set, s.Name)
		}
	}
	return set
}

func joinNames(sources []Source) string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name
	}
	return joinSources(names)
}

func joinSources(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " or " + names[len(names)-1]
}
