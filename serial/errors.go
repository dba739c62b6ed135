package serial

import (
	"errors"
	"fmt"
)

//////
// Const, vars, types.
//////

var (
	// ErrNilDocument indicates a nil document passed to a decode call.
	ErrNilDocument = errors.New("serial: document must not be nil")

	// ErrAmbiguousCondition indicates a condition document carrying both a
	// threshold operator and a subselection list.
	ErrAmbiguousCondition = errors.New("serial: condition declares both an operator and an in list")

	// ErrEmptyCondition indicates a condition document carrying neither a
	// threshold operator nor a subselection list.
	ErrEmptyCondition = errors.New("serial: condition declares neither an operator nor an in list")

	// ErrThresholdRequired indicates a sum or product constraint document
	// whose condition is a subselection.
	ErrThresholdRequired = errors.New("serial: sum and product constraints require a threshold condition")
)

// UnknownTagError reports a document type tag, or a domain value of a type,
// that the registry has no codec for. The registry is closed: extending it
// means extending NewRegistry, not registering hooks at runtime.
type UnknownTagError struct {
	// Kind is the codec family, e.g. "parameter" or "kernel".
	Kind string

	// Tag is the unrecognized type tag, or the Go type of an unrecognized
	// domain value.
	Tag string
}

// NotSerializableError reports a domain object that carries state with no
// document form, such as a custom constraint's validator function.
type NotSerializableError struct {
	// Kind is the codec family.
	Kind string

	// Name identifies the offending object.
	Name string
}

//////
// Methods.
//////

// Error implements the error interface.
func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("serial: unknown %s tag %q", e.Kind, e.Tag)
}

// Error implements the error interface.
func (e *NotSerializableError) Error() string {
	return fmt.Sprintf("serial: %s %q is not serializable", e.Kind, e.Name)
}
