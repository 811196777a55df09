package ingest

import "errors"

var (
	// ErrStoreRequired is returned when an atom store is not provided.
	ErrStoreRequired = errors.New("atom store required")

	// ErrSyntax is returned when the s-expression input is malformed.
	ErrSyntax = errors.New("malformed s-expression")

	// ErrUnknownAtomType is returned for a head symbol naming no atom type.
	ErrUnknownAtomType = errors.New("unknown atom type")
)
