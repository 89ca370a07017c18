package dependency

import (
	"errors"
	"fmt"
)

// ErrorType classifies dependency errors
type ErrorType int

const (
	// ErrTypeToolMissing indicates the metadata query tool itself is absent
	ErrTypeToolMissing ErrorType = iota
	// ErrTypeNotFound indicates a required dependency is absent
	ErrTypeNotFound
	// ErrTypeInvalidConfig indicates malformed options in the build description
	ErrTypeInvalidConfig
	// ErrTypeToolingFault indicates the environment misbehaved after the
	// tool was confirmed present (failed query, timeout, unreadable header)
	ErrTypeToolingFault
)

// String returns a short name for the error type
func (t ErrorType) String() string {
	switch t {
	case ErrTypeToolMissing:
		return "tool missing"
	case ErrTypeNotFound:
		return "not found"
	case ErrTypeInvalidConfig:
		return "invalid configuration"
	case ErrTypeToolingFault:
		return "tooling fault"
	default:
		return "unknown"
	}
}

// DependencyError is returned for every fatal detection failure.
type DependencyError struct {
	Type       ErrorType
	Dependency string // Dependency being resolved
	Module     string // Offending module, if any
	Message    string // Human-readable error message
	Err        error  // Underlying error (if any)
}

// Error implements the error interface
func (e *DependencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support
func (e *DependencyError) Unwrap() error {
	return e.Err
}

// Suggestion returns an actionable hint for the error type.
// Returns an empty string if no specific suggestion is available.
func (e *DependencyError) Suggestion() string {
	switch e.Type {
	case ErrTypeToolMissing:
		return "Install pkg-config (or pkgconf) and make sure it is on PATH"
	case ErrTypeNotFound:
		return fmt.Sprintf("Install the development package for %s, or mark the dependency as optional", e.Dependency)
	case ErrTypeInvalidConfig:
		return "Fix the dependency declaration in the build description"
	case ErrTypeToolingFault:
		return "Run the failing query by hand to see the tool's diagnostics"
	default:
		return ""
	}
}

func toolMissingError(dep, tool string, err error) *DependencyError {
	return &DependencyError{
		Type:       ErrTypeToolMissing,
		Dependency: dep,
		Message:    fmt.Sprintf("metadata tool %q not found", tool),
		Err:        err,
	}
}

func notFoundError(dep string) *DependencyError {
	return &DependencyError{
		Type:       ErrTypeNotFound,
		Dependency: dep,
		Message:    fmt.Sprintf("required dependency %q not found", dep),
	}
}

func invalidConfigError(dep, module, format string, args ...any) *DependencyError {
	return &DependencyError{
		Type:       ErrTypeInvalidConfig,
		Dependency: dep,
		Module:     module,
		Message:    fmt.Sprintf(format, args...),
	}
}

func toolingFaultError(dep string, err error, format string, args ...any) *DependencyError {
	return &DependencyError{
		Type:       ErrTypeToolingFault,
		Dependency: dep,
		Message:    fmt.Sprintf(format, args...),
		Err:        err,
	}
}

// AsDependencyError extracts the DependencyError from an error.
// Returns nil if the error is not a DependencyError.
func AsDependencyError(err error) *DependencyError {
	var depErr *DependencyError
	if errors.As(err, &depErr) {
		return depErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	depErr := AsDependencyError(err)
	return depErr != nil && depErr.Type == t
}

// IsToolMissing reports whether err means the metadata tool is absent.
func IsToolMissing(err error) bool { return isType(err, ErrTypeToolMissing) }

// IsNotFound reports whether err means a required dependency is absent.
func IsNotFound(err error) bool { return isType(err, ErrTypeNotFound) }

// IsInvalidConfig reports whether err means the caller's options are malformed.
func IsInvalidConfig(err error) bool { return isType(err, ErrTypeInvalidConfig) }

// IsToolingFault reports whether err means a probe failed unexpectedly.
func IsToolingFault(err error) bool { return isType(err, ErrTypeToolingFault) }
