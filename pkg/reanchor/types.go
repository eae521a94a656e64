package reanchor

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Text is an immutable snapshot of a document as a sequence of code points.
// Every position handled by this package is a rune index into a Text.
type Text []rune

// NewText converts s into a Text.
func NewText(s string) Text { return Text([]rune(s)) }

// String returns the text as a Go string.
func (t Text) String() string { return string(t) }

// Operation tags an edit operation.
type Operation int8

const (
	// OpEqual marks units present in both texts.
	OpEqual Operation = iota
	// OpInsert marks units present only in the new text.
	OpInsert
	// OpDelete marks units present only in the old text.
	OpDelete
)

// String returns a human-readable name of the operation.
func (op Operation) String() string {
	switch op {
	case OpEqual:
		return "Equal"
	case OpInsert:
		return "Insertion"
	case OpDelete:
		return "Deletion"
	default:
		return "Unknown"
	}
}

// EditOp is one step of an edit script.
type EditOp struct {
	Op    Operation
	Index int    // Position in the edit script
	Units []rune // Units covered by this op
}

// AnnotationID names one tracked span.
type AnnotationID string

// NewAnnotationID returns a fresh, globally unique annotation identifier.
func NewAnnotationID() AnnotationID {
	return AnnotationID(uuid.NewString())
}

var (
	// ErrEmptyPattern is returned when an index is requested for a zero-length pattern.
	ErrEmptyPattern = errors.New("reanchor: empty pattern")

	// ErrIndexOutOfBounds reports a tracked position outside its reference text.
	ErrIndexOutOfBounds = errors.New("reanchor: tracked position out of bounds")
)

// ConfigurationError is returned for invalid caller-supplied parameters.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("reanchor: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InvariantError reports that an Index and the text it refers to no longer agree.
// It always indicates a programming error on the caller's side.
type InvariantError struct {
	ID       AnnotationID
	Position int
	Length   int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("reanchor: annotation %q position %d outside text of length %d", e.ID, e.Position, e.Length)
}

func (e *InvariantError) Unwrap() error { return ErrIndexOutOfBounds }
