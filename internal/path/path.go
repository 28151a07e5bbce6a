// Package path provides the label path used to navigate the object graph,
// based on the canonical format `a.b.c`.
//
// A path is an ordered sequence of attribute labels applied left to right.
// The empty path addresses the start vertex itself. This package centralizes
// label validation together with all formatting and parsing logic.
package path

import (
	"fmt"
	"strings"
	"unicode"
)

// Separator joins labels in the textual form of a path.
const Separator = "."

// Path is an ordered sequence of labels.
type Path []string

// Root is the empty path.
var Root = Path{}

// Parse creates a Path from its canonical string form. The empty string
// parses to the empty path.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, nil
	}
	labels := strings.Split(raw, Separator)
	for _, label := range labels {
		if err := ValidateLabel(label); err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", raw, err)
		}
	}
	return Path(labels), nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals in code and tests.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// ValidateLabel checks that a label can appear in a path: it must be
// non-empty, must not contain the separator, and must not contain whitespace
// or control characters.
func ValidateLabel(label string) error {
	if label == "" {
		return fmt.Errorf("label cannot be empty")
	}
	for _, r := range label {
		if string(r) == Separator {
			return fmt.Errorf("label %q contains %q", label, Separator)
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("label %q contains whitespace or control characters", label)
		}
	}
	return nil
}

// String serializes the path into its canonical form.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Child returns a new path with label appended. The receiver is not modified.
func (p Path) Child(label string) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, label)
}

// Equal reports whether both paths hold the same labels in the same order.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is a leading part of p.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && p[:len(prefix)].Equal(prefix)
}
