// Package errs provides the typed errors shared by the domain model and the
// persistence adapters of the order intake service.
//
// Every type pairs a sentinel (ErrValueIsRequired, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrObjectNotFound) with a struct carrying the offending
// parameter and an optional cause. The struct unwraps to its sentinel, so callers
// branch with errors.Is and extract details with errors.As:
//
//	loc, err := registry.GetActiveLocation(ctx, merchantID, code)
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//	    // pickup location is unknown to this merchant
//	}
package errs
