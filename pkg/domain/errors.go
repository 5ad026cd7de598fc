package domain

import "errors"

// ErrorKind distinguishes the two validation failures.
type ErrorKind string

const (
	// KindMissingEntryPoint: entry_point is absent, not a string, or empty.
	KindMissingEntryPoint ErrorKind = "missing_entry_point"
	// KindInvalidStructure covers every other shape, reference or cycle failure.
	KindInvalidStructure ErrorKind = "invalid_structure"
)

// Fixed messages. Callers match on them verbatim, so they never carry details.
const (
	MissingEntryPointMessage = "Entry point not specified."
	InvalidStructureMessage  = "Invalid DAG structure or cycles detected."
)

var (
	// ErrMissingEntryPoint matches any DagValidationError of KindMissingEntryPoint via errors.Is.
	ErrMissingEntryPoint = &DagValidationError{Kind: KindMissingEntryPoint}
	// ErrInvalidStructure matches any DagValidationError of KindInvalidStructure via errors.Is.
	ErrInvalidStructure = &DagValidationError{Kind: KindInvalidStructure}
)

// DagValidationError is returned when a DAG description is rejected.
type DagValidationError struct {
	Kind ErrorKind
}

func (e *DagValidationError) Error() string {
	if e.Kind == KindMissingEntryPoint {
		return MissingEntryPointMessage
	}
	return InvalidStructureMessage
}

// Is reports whether target is a DagValidationError of the same kind.
func (e *DagValidationError) Is(target error) bool {
	t, ok := target.(*DagValidationError)
	return ok && t.Kind == e.Kind
}

// KindOf returns the validation error kind wrapped in err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var dve *DagValidationError
	if errors.As(err, &dve) {
		return dve.Kind, true
	}
	return "", false
}

// NewValidationError builds an error of the given kind.
func NewValidationError(kind ErrorKind) error {
	return &DagValidationError{Kind: kind}
}
