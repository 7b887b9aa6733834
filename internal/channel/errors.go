package channel

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOwner         = errors.New("channel: owner identity is empty")
	ErrInvalidOwner       = errors.New("channel: owner identity is invalid")
	ErrUnknownFamily      = errors.New("channel: unknown family")
	ErrResourceNotAllowed = errors.New("channel: resource type not allowed for family")
	ErrUnknownChannel     = errors.New("channel: name does not belong to the scheme")
	ErrInvalidScheme      = errors.New("channel: invalid scheme")
)

// ContractError is returned by MustDerive's panic and carries the offending input.
type ContractError struct {
	Family   Family
	Resource ResourceType
	Owner    string
	Err      error
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("derive channel (family=%s resource=%s owner=%q): %v", e.Family, e.Resource, e.Owner, e.Err)
}

func (e *ContractError) Unwrap() error { return e.Err }
