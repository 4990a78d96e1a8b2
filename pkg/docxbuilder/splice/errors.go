package splice

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to test for them; the concrete error is usually a *PackageError.
var (
	// ErrMalformedPackage reports a missing required part or an unusable relationship.
	ErrMalformedPackage = errors.New("malformed package")
	// ErrMalformedDocumentXML reports that the body of word/document.xml could not be located.
	ErrMalformedDocumentXML = errors.New("malformed document xml")
	// ErrPackageWrite reports a failure while flushing, rendering or serializing the output.
	ErrPackageWrite = errors.New("package write error")
	// ErrUnsupportedMergeTarget reports a shared part that cannot be merged.
	// It is a diagnostic unless strict merging is enabled.
	ErrUnsupportedMergeTarget = errors.New("unsupported merge target")
)

// PackageError ties an error kind to the package part it concerns.
type PackageError struct {
	Kind  error
	Part  string
	Cause error
}

func (e *PackageError) Error() string {
	switch {
	case e.Part != "" && e.Cause != nil:
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Part, e.Cause)
	case e.Part != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Part)
	case e.Cause != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
	}
	return e.Kind.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *PackageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newPackageError(kind error, part string, cause error) error {
	return &PackageError{Kind: kind, Part: part, Cause: cause}
}
