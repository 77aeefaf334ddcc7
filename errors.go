package tracked

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrKeyMissing is returned by typed accessors when a key is absent.
	ErrKeyMissing = errors.New("key not present")
	// ErrRejectedWrite is returned when a container or view refused a write,
	// for example through a readonly view.
	ErrRejectedWrite = errors.New("write rejected")
	// ErrTypeMismatch is returned when a stored value has an unexpected type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotComposite is returned by operations that require a container.
	ErrNotComposite = errors.New("value is not a container")
	// ErrNotSerializable is returned when serializing weak containers.
	ErrNotSerializable = errors.New("weak containers are not serializable")
	// ErrScalarDocument is returned when a decoded document root is neither
	// an object nor an array.
	ErrScalarDocument = errors.New("document root is not an object or array")
	// ErrTooDeep is returned when serialization exceeds the nesting bound,
	// which usually means the document is cyclic.
	ErrTooDeep = errors.New("document nesting too deep")
)

// InternalError reports a broken internal invariant, such as a duplicate
// identity registration. It is raised as a panic value because continuing
// would let two live views of the same kind coexist.
type InternalError struct {
	Context    string
	Cause      error
	StackTrace []byte
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("internal invariant violated during %s: %v", e.Context, e.Cause)
	}
	return fmt.Sprintf("internal invariant violated during %s", e.Context)
}

func (e *InternalError) Unwrap() error {
	return e.Cause
}

// SafeTypeAssertion performs safe type assertion with proper error
func SafeTypeAssertion[T any](value any) (T, error) {
	if value == nil {
		var zero T
		return zero, nil
	}

	typed, ok := value.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: expected %T, got %T (value: %v)", ErrTypeMismatch, zero, value, value)
	}

	return typed, nil
}

func createInternalError(context string, cause error) *InternalError {
	return &InternalError{
		Context:    context,
		Cause:      cause,
		StackTrace: debug.Stack(),
	}
}
