package vtfp

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindMalformedResource marks a stereoscopic eye mismatch (edit rate,
	// duration, or repeat count) detected at construction.
	KindMalformedResource Kind = "MalformedResource"
	// KindMissingDuration marks a resource with a zero SourceDuration and no
	// intrinsic-duration fallback.
	KindMissingDuration Kind = "MissingDuration"
	// KindEmptyTrack marks a track selection that matched no resources.
	KindEmptyTrack Kind = "EmptyTrack"
	// KindInvalidWidth marks a fingerprint hex width outside the valid range
	// for the digest.
	KindInvalidWidth Kind = "InvalidWidth"
	// KindParse marks a malformed composition playlist document.
	KindParse Kind = "Parse"
	// KindInternal marks a failure that should be unreachable for well-formed input.
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., VTFP-RES-001, VTFP-TRK-001) that names
// the violated invariant or validation rule.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewError constructs a structured error. Exported so that companion packages
// (the CPL parser in particular) report failures through the same taxonomy.
func NewError(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// WrapError constructs a structured error around a cause.
func WrapError(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return NewError(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
