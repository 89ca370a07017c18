// Package errmsg provides enhanced error message formatting with actionable suggestions.
package errmsg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsukumogami/depprobe/internal/dependency"
)

// ErrorContext provides additional context for error formatting
type ErrorContext struct {
	Dependency string // The dependency being resolved (for suggestions)
}

// Format returns a formatted error message with possible causes and suggestions.
// The context parameter is optional - pass nil for generic formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	if depErr := dependency.AsDependencyError(err); depErr != nil {
		return formatDependencyError(depErr, ctx)
	}

	errMsg := err.Error()

	if errors.Is(err, context.Canceled) {
		return formatCanceled(errMsg)
	}

	if isPermissionError(errMsg) {
		return formatPermissionError(errMsg)
	}

	// Return original error for unrecognized types
	return errMsg
}

// Fprint writes the formatted error to w with an "Error: " prefix.
func Fprint(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %s\n", strings.TrimRight(Format(err, nil), "\n"))
}

func formatDependencyError(err *dependency.DependencyError, ctx *ErrorContext) string {
	name := err.Dependency
	if name == "" && ctx != nil {
		name = ctx.Dependency
	}
	if name == "" {
		name = "<name>"
	}

	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	switch err.Type {
	case dependency.ErrTypeToolMissing:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - pkg-config is not installed\n")
		sb.WriteString("  - pkg-config is installed outside of PATH\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Install pkg-config or pkgconf with your system package manager\n")
		sb.WriteString("  - Point DEPPROBE_PKG_CONFIG at the tool if it has another name\n")

	case dependency.ErrTypeNotFound:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The development package is not installed\n")
		sb.WriteString("  - The package is installed under a non-standard prefix\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString(fmt.Sprintf("  - Install the development files for %s\n", name))
		if dependency.IsRegistered(name) {
			sb.WriteString("  - Adjust the search roots with 'depprobe config set'\n")
		} else {
			sb.WriteString("  - Add the package's .pc directory to PKG_CONFIG_PATH\n")
		}
		sb.WriteString(fmt.Sprintf("  - Run 'depprobe find %s' without --required to inspect the result\n", name))

	case dependency.ErrTypeInvalidConfig:
		sb.WriteString("\nPossible causes:\n")
		if err.Module != "" {
			sb.WriteString(fmt.Sprintf("  - Module %q is not part of the %s installation\n", err.Module, name))
		}
		sb.WriteString("  - Malformed or missing dependency options\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Check the modules requested for this dependency\n")
		sb.WriteString("  - Run 'depprobe detectors' to see which names take modules\n")

	case dependency.ErrTypeToolingFault:
		sb.WriteString("\nPossible causes:\n")
		if errors.Is(err, context.DeadlineExceeded) {
			sb.WriteString("  - The metadata tool did not answer in time\n")
		}
		sb.WriteString("  - Broken package metadata on this system\n")
		sb.WriteString("  - Unreadable files under the search roots\n")

		sb.WriteString("\nSuggestions:\n")
		sb.WriteString(fmt.Sprintf("  - Run 'pkg-config --cflags --libs %s' by hand to see its diagnostics\n", name))
		if errors.Is(err, context.DeadlineExceeded) {
			sb.WriteString("  - Raise DEPPROBE_PROBE_TIMEOUT\n")
		}

	default:
		if s := err.Suggestion(); s != "" {
			sb.WriteString("\nSuggestions:\n")
			sb.WriteString("  - " + s + "\n")
		}
	}

	return sb.String()
}

func formatCanceled(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")
	sb.WriteString("\nThe operation was interrupted before all probes finished.\n")
	return sb.String()
}

func formatPermissionError(errMsg string) string {
	var sb strings.Builder
	sb.WriteString(errMsg)
	sb.WriteString("\n")

	sb.WriteString("\nPossible causes:\n")
	sb.WriteString("  - Insufficient permissions on $DEPPROBE_HOME directory\n")
	sb.WriteString("  - Search root owned by a different user\n")

	sb.WriteString("\nSuggestions:\n")
	sb.WriteString("  - Check permissions on ~/.depprobe directory\n")
	sb.WriteString("  - Ensure the search roots are readable: ls -la /usr/include\n")

	return sb.String()
}

// isPermissionError checks if the error message indicates a permission issue
func isPermissionError(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "permission denied") ||
		strings.Contains(lower, "access denied") ||
		strings.Contains(lower, "operation not permitted")
}
