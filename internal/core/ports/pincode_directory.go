package ports

import (
	"context"

	"orderintake/internal/core/domain/model/pincode"
)

// PincodeDirectory serves pincode reference data.
type PincodeDirectory interface {
	// IsServiceable reports whether any courier delivers to the pincode.
	// Unknown pincodes are not serviceable.
	IsServiceable(ctx context.Context, code string) (bool, error)

	// Lookup returns the directory record or an errs.ObjectNotFoundError.
	Lookup(ctx context.Context, code string) (*pincode.Pincode, error)
}
