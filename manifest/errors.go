package manifest

import "fmt"

// ParseError is returned when a manifest cannot be read or is not a JSON
// object.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("manifest %s: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError is returned when a well-formed manifest is not a manifest
// the build can use.
type ValidationError struct {
	Path   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("manifest %s: %s: %s", e.Path, e.Field, e.Reason)
}
