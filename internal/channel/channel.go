package channel

import (
	"fmt"
	"strings"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/model"
)

// ValidateOwner checks an owner identity against the naming constraints.
func ValidateOwner(owner string) error {
	if owner == "" {
		return ErrEmptyOwner
	}
	if len(owner) > MaxOwnerLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidOwner, MaxOwnerLength)
	}
	if !ownerPattern.MatchString(owner) {
		return fmt.Errorf("%w: only alphanumeric, underscore, and hyphen allowed", ErrInvalidOwner)
	}
	return nil
}

// Derive returns the channel name for (family, resource, owner). The result
// depends on nothing but its inputs and the scheme.
func (s *Scheme) Derive(family Family, resource ResourceType, owner string) (Name, error) {
	rule, err := s.lookup(family, resource)
	if err != nil {
		return "", err
	}
	if err := ValidateOwner(owner); err != nil {
		return "", err
	}
	return Name(rule.Prefix + owner), nil
}

// MustDerive is Derive that panics with a *ContractError on invalid input.
func (s *Scheme) MustDerive(family Family, resource ResourceType, owner string) Name {
	name, err := s.Derive(family, resource, owner)
	if err != nil {
		panic(&ContractError{Family: family, Resource: resource, Owner: owner, Err: err})
	}
	return name
}

// Parse decodes a name produced by Derive. Names outside the scheme return
// ErrUnknownChannel.
func (s *Scheme) Parse(name Name) (Descriptor, error) {
	for _, r := range s.rules {
		owner, ok := strings.CutPrefix(string(name), r.Prefix)
		if !ok {
			continue
		}
		if err := ValidateOwner(owner); err != nil {
			return Descriptor{}, fmt.Errorf("%w: %q: %w", ErrUnknownChannel, name, err)
		}
		return Descriptor{Family: r.Family, Resource: r.Resource, Owner: owner}, nil
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownChannel, name)
}

// ForScope returns every channel the session should subscribe to. The owner
// is always the session's own user id: coach channels aggregate the coach's
// students under the coach id, student channels use the student's id.
func (s *Scheme) ForScope(scope model.Scope) ([]Name, error) {
	resources := s.Resources(scope.Role)
	if len(resources) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, scope.Role)
	}

	names := make([]Name, 0, len(resources))
	for _, rt := range resources {
		name, err := s.Derive(scope.Role, rt, scope.UserID)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Derive uses the default scheme.
func Derive(family Family, resource ResourceType, owner string) (Name, error) {
	return defaultScheme.Derive(family, resource, owner)
}

// MustDerive uses the default scheme.
func MustDerive(family Family, resource ResourceType, owner string) Name {
	return defaultScheme.MustDerive(family, resource, owner)
}

// Parse uses the default scheme.
func Parse(name Name) (Descriptor, error) {
	return defaultScheme.Parse(name)
}
