package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the entity exists but belongs to another owner.
	// Adapters should present it the same way as ErrNotFound.
	ErrForbidden = errors.New("forbidden")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnsupportedType indicates an unknown element or chart kind.
	ErrUnsupportedType = errors.New("unsupported type")

	// Export Errors.

	// ErrEmptyOrOversizedDocument indicates a deck with no slides, or one whose
	// part count exceeds the configured bound.
	ErrEmptyOrOversizedDocument = errors.New("empty or oversized document")

	// ErrAssetFetch indicates a remote asset could not be retrieved.
	// It is recovered per element and never fails an export.
	ErrAssetFetch = errors.New("asset fetch failed")

	// ErrElementSerialization indicates a single element could not be written.
	// It is recovered per element and never fails an export.
	ErrElementSerialization = errors.New("element serialization failed")

	// ErrPackaging indicates the archive itself could not be assembled.
	ErrPackaging = errors.New("packaging failed")

	// Authentication Errors.

	// ErrAuthRequired indicates a request carried no identity.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the presented identity could not be verified.
	ErrAuthInvalid = errors.New("authentication invalid")
)
