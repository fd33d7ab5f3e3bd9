package trcat

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformed reports a catalog document that cannot be parsed. The
	// catalog must not be used.
	ErrMalformed = errors.New("malformed catalog document")
	// ErrEmptyDocument reports a parseable document without usable entries.
	// The returned catalog is valid and resolves everything to source text.
	ErrEmptyDocument = errors.New("catalog document has no usable entries")
)

type LoadErrorKind int

const (
	LoadErrorMalformed LoadErrorKind = iota + 1
	LoadErrorEmptyDocument
)

// LoadError is returned by Load and friends. Use errors.Is with
// ErrMalformed or ErrEmptyDocument to tell the kinds apart.
type LoadError struct {
	Kind     LoadErrorKind
	Language string
	Format   Format
	Err      error
}

func (le *LoadError) Error() string {
	msg := fmt.Sprintf("trcat: %s %s catalog", le.sentinel(), le.Format)
	if le.Language != "" {
		msg += fmt.Sprintf(" for %q", le.Language)
	}
	if le.Err != nil {
		msg += ": " + le.Err.Error()
	}
	return msg
}

func (le *LoadError) Unwrap() error {
	return le.Err
}

func (le *LoadError) Is(target error) bool {
	return target == le.sentinel()
}

func (le *LoadError) sentinel() error {
	if le.Kind == LoadErrorEmptyDocument {
		return ErrEmptyDocument
	}
	return ErrMalformed
}

type WarningKind int

const (
	WarningMalformedRecord WarningKind = iota + 1
	WarningDuplicateKey
	WarningPluralMismatch
	WarningLanguageMismatch
	WarningAmbiguousLookup
)

func (k WarningKind) String() string {
	switch k {
	case WarningMalformedRecord:
		return "malformed_record"
	case WarningDuplicateKey:
		return "duplicate_key"
	case WarningPluralMismatch:
		return "plural_mismatch"
	case WarningLanguageMismatch:
		return "language_mismatch"
	case WarningAmbiguousLookup:
		return "ambiguous_lookup"
	default:
		return fmt.Sprintf("warning(%d)", int(k))
	}
}

// Warning is a recovered per-entry anomaly. Record is the 1-based position
// of the offending record in document order, or 0 when not record specific.
type Warning struct {
	Kind   WarningKind
	Key    Key
	Record int
	Detail string
}

func (w Warning) Error() string {
	msg := w.Kind.String()
	if w.Record > 0 {
		msg += fmt.Sprintf(" (record %d)", w.Record)
	}
	if w.Key != (Key{}) {
		msg += fmt.Sprintf(" [%s]", w.Key)
	}
	if w.Detail != "" {
		msg += ": " + w.Detail
	}
	return msg
}
