package domain

import "errors"

// Failure classes surfaced by the pipeline. Callers match them with
// errors.Is; adapters wrap them with context via fmt.Errorf and %w.
var (
	// ErrInvalidInput marks an empty question or an out-of-range
	// top_n / n_docs argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrRetrieval marks a retrieval stage that found no usable documents.
	// Distinct from an empty answer list, which means extraction ran and
	// found nothing.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrExtraction marks a span extraction stage that could not run or
	// returned spans violating the context offset contract.
	ErrExtraction = errors.New("extraction failed")
)
