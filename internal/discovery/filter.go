package discovery

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type filterKind int

const (
	filterAbsent filterKind = iota
	filterString
	filterList
)

// Filter is a group or address filter supplied either as one
// comma-delimited string or as a list of values. The zero value is absent,
// which the engine treats differently from an empty filter.
type Filter struct {
	kind   filterKind
	raw    string
	values []string
}

// FilterString returns a filter passed to the engine unchanged.
func FilterString(s string) Filter {
	return Filter{kind: filterString, raw: s}
}

// FilterList returns a filter whose values are joined with ",".
// An empty list is present and normalizes to "".
func FilterList(values ...string) Filter {
	return Filter{kind: filterList, values: append([]string(nil), values...)}
}

// IsSet reports whether the filter was supplied at all.
func (f Filter) IsSet() bool {
	return f.kind != filterAbsent
}

// IsZero reports whether the filter is absent. yaml.v3 uses it for omitempty.
func (f Filter) IsZero() bool {
	return !f.IsSet()
}

// Normalize returns the single filter string handed to the engine and
// whether the filter is present.
func (f Filter) Normalize() (string, bool) {
	switch f.kind {
	case filterString:
		return f.raw, true
	case filterList:
		return strings.Join(f.values, ","), true
	default:
		return "", false
	}
}

// Values splits the normalized filter into trimmed, non-empty entries.
func (f Filter) Values() []string {
	s, ok := f.Normalize()
	if !ok {
		return nil
	}
	return SplitList(s)
}

// String returns the normalized filter, or "<unset>" when absent.
func (f Filter) String() string {
	s, ok := f.Normalize()
	if !ok {
		return "<unset>"
	}
	return s
}

func (f Filter) pointer() *string {
	s, ok := f.Normalize()
	if !ok {
		return nil
	}
	return &s
}

// UnmarshalYAML accepts a scalar string or a sequence of strings.
func (f *Filter) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*f = Filter{}
			return nil
		}
		*f = FilterString(node.Value)
		return nil
	case yaml.SequenceNode:
		var values []string
		if err := node.Decode(&values); err != nil {
			return fmt.Errorf("failed to decode filter list: %w", err)
		}
		*f = FilterList(values...)
		return nil
	default:
		return fmt.Errorf("filter must be a string or a list of strings (line %d)", node.Line)
	}
}

// MarshalYAML writes the filter in the shape it was given.
func (f Filter) MarshalYAML() (interface{}, error) {
	switch f.kind {
	case filterString:
		return f.raw, nil
	case filterList:
		if f.values == nil {
			return []string{}, nil
		}
		return f.values, nil
	default:
		return nil, nil
	}
}

// SplitList splits a comma-delimited filter into trimmed, non-empty values.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
