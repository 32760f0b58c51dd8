package profilestore

import (
	"errors"
	"fmt"

	"github.com/sbcounts/aadv/schema"
)

// LoadError reports that a factor document could not be fetched or parsed
// at all. Callers recover by switching to the fallback estimator.
type LoadError struct {
	Kind schema.ProfileKind
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load %s profile document: %v", e.Kind, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UnknownProfileError reports that a document loaded fine but does not
// contain the requested profile name. Distinct from a load failure, with
// the same fallback recovery.
type UnknownProfileError struct {
	Kind schema.ProfileKind
	Name string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("%s profile %q not found in loaded document", e.Kind, e.Name)
}

// IsProfileError reports whether err is any of the profile error types,
// i.e. whether the fallback path applies.
func IsProfileError(err error) bool {
	var loadErr *LoadError
	var unknownErr *UnknownProfileError
	return errors.As(err, &loadErr) || errors.As(err, &unknownErr)
}
