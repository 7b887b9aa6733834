package channel

import (
	"fmt"
	"strings"
)

// Scheme is the explicit scoping configuration: which resource types each
// family may subscribe to and the fixed prefix for each pair. A Scheme is
// immutable after construction and safe for concurrent use.
type Scheme struct {
	rules []Rule
}

// NewScheme validates rules and builds a Scheme. The prefix set must be
// prefix-free so that prefix+owner is injective across all rules.
func NewScheme(rules ...Rule) (*Scheme, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidScheme)
	}

	seen := make(map[Rule]struct{}, len(rules))
	for i, r := range rules {
		if !r.Family.Valid() {
			return nil, fmt.Errorf("%w: rule %d: %w %q", ErrInvalidScheme, i, ErrUnknownFamily, r.Family)
		}
		if r.Resource == "" || r.Prefix == "" {
			return nil, fmt.Errorf("%w: rule %d: resource and prefix are required", ErrInvalidScheme, i)
		}
		pair := Rule{Family: r.Family, Resource: r.Resource}
		if _, dup := seen[pair]; dup {
			return nil, fmt.Errorf("%w: duplicate rule for %s/%s", ErrInvalidScheme, r.Family, r.Resource)
		}
		seen[pair] = struct{}{}

		for j, other := range rules {
			if i != j && strings.HasPrefix(r.Prefix, other.Prefix) {
				return nil, fmt.Errorf("%w: prefix %q overlaps %q", ErrInvalidScheme, r.Prefix, other.Prefix)
			}
		}
	}

	return &Scheme{rules: append([]Rule(nil), rules...)}, nil
}

var defaultScheme = mustScheme(defaultRules...)

func mustScheme(rules ...Rule) *Scheme {
	s, err := NewScheme(rules...)
	if err != nil {
		panic(err)
	}
	return s
}

// DefaultScheme returns the built-in coach/student scheme.
func DefaultScheme() *Scheme {
	return defaultScheme
}

// Rules returns a copy of the scheme's rules in declared order.
func (s *Scheme) Rules() []Rule {
	return append([]Rule(nil), s.rules...)
}

// Resources returns the resource types allowed for family, in declared order.
func (s *Scheme) Resources(family Family) []ResourceType {
	var out []ResourceType
	for _, r := range s.rules {
		if r.Family == family {
			out = append(out, r.Resource)
		}
	}
	return out
}

func (s *Scheme) lookup(family Family, resource ResourceType) (Rule, error) {
	if !family.Valid() {
		return Rule{}, fmt.Errorf("%w: %q", ErrUnknownFamily, family)
	}
	for _, r := range s.rules {
		if r.Family == family && r.Resource == resource {
			return r, nil
		}
	}
	return Rule{}, fmt.Errorf("%w: %s/%s", ErrResourceNotAllowed, family, resource)
}
