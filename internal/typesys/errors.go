package typesys

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a type name does not correspond to any type
// known to a provider.
var ErrNotFound = errors.New("type not found")

// ArgumentError reports invalid input supplied by the caller.
type ArgumentError struct {
	Arg     string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s: %s", e.Arg, e.Message)
}

// ResolutionError reports a seed name that could not be resolved.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %q: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ProviderError reports a provider failure while introspecting a type that
// had already been resolved.
type ProviderError struct {
	Op   string
	Type TypeID
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Type, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
