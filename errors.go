package fkjoin

import (
	"errors"
	"fmt"

	"github.com/syssam/fkjoin/jointree"
)

// Sentinel errors for the three verification failure kinds. The typed errors
// below match these through errors.Is.
var (
	// ErrIntegrity indicates the foreign-key join graph is not a valid
	// arborescence, or its root is not the designated trunk relation.
	ErrIntegrity = errors.New("fkjoin: integrity violation")

	// ErrUnsupported indicates an unsupported join-tree shape, or a
	// foreign-key join that would silently filter rows.
	ErrUnsupported = errors.New("fkjoin: unsupported construct")

	// ErrSchema indicates catalog metadata needed for verification could
	// not be resolved.
	ErrSchema = errors.New("fkjoin: schema error")
)

// IntegrityError reports a structural failure: the participating relations
// and foreign-key edges do not form a tree rooted at the trunk relation.
type IntegrityError struct {
	Message string
	At      jointree.Pos
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	if e.At.IsValid() {
		return fmt.Sprintf("fkjoin: %s (at %s)", e.Message, e.At)
	}
	return fmt.Sprintf("fkjoin: %s", e.Message)
}

// Is reports whether the target matches the sentinel error for IntegrityError.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// UnsupportedError reports a construct the verifier cannot accept: an unknown
// join-tree node shape, a join tree nested beyond the depth limit, or a
// foreign-key join edge that would discard rows it must preserve.
type UnsupportedError struct {
	Message string
	At      jointree.Pos
}

// Error implements the error interface.
func (e *UnsupportedError) Error() string {
	if e.At.IsValid() {
		return fmt.Sprintf("fkjoin: %s (at %s)", e.Message, e.At)
	}
	return fmt.Sprintf("fkjoin: %s", e.Message)
}

// Is reports whether the target matches the sentinel error for UnsupportedError.
func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// SchemaError reports that a referencing column could not be resolved to a
// base-table column, or that its nullability could not be determined. This
// signals a catalog consistency problem and is never retried.
type SchemaError struct {
	Rel     jointree.RelID
	Column  string
	Message string
	At      jointree.Pos
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msg := fmt.Sprintf("fkjoin: schema error for column %q of relation %d: %s", e.Column, e.Rel, e.Message)
	if e.At.IsValid() {
		msg += fmt.Sprintf(" (at %s)", e.At)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// IsIntegrity reports whether the error is an IntegrityError.
func IsIntegrity(err error) bool {
	if err == nil {
		return false
	}
	var e *IntegrityError
	return errors.As(err, &e) || errors.Is(err, ErrIntegrity)
}

// IsUnsupported reports whether the error is an UnsupportedError.
func IsUnsupported(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedError
	return errors.As(err, &e) || errors.Is(err, ErrUnsupported)
}

// IsSchema reports whether the error is a SchemaError.
func IsSchema(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e) || errors.Is(err, ErrSchema)
}
