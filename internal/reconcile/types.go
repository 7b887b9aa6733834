package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// QueryKey is an ordered sequence of tokens identifying one cached fetch
// result in the cache layer.
type QueryKey []string

// String returns the canonical JSON encoding of k, e.g. ["tasks","c-42"].
// Keys with equal tokens always share the same string.
func (k QueryKey) String() string {
	b, err := json.Marshal([]string(k))
	if err != nil {
		// []string never fails to marshal.
		panic(err)
	}
	return string(b)
}

// Validate rejects empty keys and empty tokens.
func (k QueryKey) Validate() error {
	if len(k) == 0 {
		return ErrEmptyKey
	}
	for i, tok := range k {
		if tok == "" {
			return fmt.Errorf("%w: position %d", ErrEmptyToken, i)
		}
	}
	return nil
}

// Equal reports whether k and other have the same tokens in the same order.
func (k QueryKey) Equal(other QueryKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if k[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of k that shares no memory with it.
func (k QueryKey) Clone() QueryKey {
	return append(QueryKey(nil), k...)
}

// ParseQueryKey accepts either the canonical JSON form or comma-separated
// tokens ("tasks,c-42").
func ParseQueryKey(s string) (QueryKey, error) {
	s = strings.TrimSpace(s)

	var k QueryKey
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &k); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
		}
	} else if s != "" {
		for _, tok := range strings.Split(s, ",") {
			k = append(k, strings.TrimSpace(tok))
		}
	}

	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

// Set is an ordered ReconciliationSet. Duplicate keys are allowed and are
// invalidated once per occurrence.
type Set []QueryKey

// Validate checks every key in the set. An empty set is valid.
func (s Set) Validate() error {
	for i, k := range s {
		if err := k.Validate(); err != nil {
			return fmt.Errorf("key %d: %w", i, err)
		}
	}
	return nil
}

// Clone deep-copies s.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, k := range s {
		out[i] = k.Clone()
	}
	return out
}

// Contains reports whether k is a member of s.
func (s Set) Contains(k QueryKey) bool {
	for _, m := range s {
		if m.Equal(k) {
			return true
		}
	}
	return false
}

// CancelFunc releases a registration. Calling it more than once is a no-op.
type CancelFunc func()
