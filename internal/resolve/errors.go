package resolve

import "fmt"

// ResolutionError reports a failure to determine a driver version or
// a download URL for one.
type ResolutionError struct {
	// Version is the requested version or milestone, when known.
	Version string

	// Message is a human-readable description of what could not be
	// resolved.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *ResolutionError) Error() string {
	if e.Version != "" {
		if e.Err != nil {
			return fmt.Sprintf("cannot resolve version %s: %s: %v", e.Version, e.Message, e.Err)
		}
		return fmt.Sprintf("cannot resolve version %s: %s", e.Version, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("version resolution failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("version resolution failed: %s", e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}
