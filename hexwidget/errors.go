package hexwidget

import (
	"errors"
	"fmt"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfiguration indicates invalid options, rejected
	// before any change of the widget state.
	KindConfiguration
	// KindUsage indicates a method called at the wrong time.
	KindUsage
	// KindResourceLoad indicates an image which could not be loaded.
	// Such errors are only logged.
	KindResourceLoad
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindUsage:
		return "usage"
	case KindResourceLoad:
		return "resource load"
	default:
		return "unknown"
	}
}

// ErrNotInitialized is returned by the accessors called before Init.
var ErrNotInitialized = errors.New("widget not initialized")

// Error is the error returned by the widget methods.
type Error struct {
	// Op is the operation that failed (e.g., "Init").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("hexwidget.%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(op string, err error) error {
	return &Error{Op: op, Kind: KindConfiguration, Err: err}
}

// IsKind returns true if err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
