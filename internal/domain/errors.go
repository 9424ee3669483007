package domain

import "errors"

// Failure classes surfaced by the export engine. The HTTP layer maps them
// to status codes with errors.Is, so wrap rather than replace them.
var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNoSupplier     = errors.New("order has no supplier assigned")
	ErrNoParts        = errors.New("order has no parts")
	ErrMixedSuppliers = errors.New("orders belong to different suppliers")
	ErrBatchTooLarge  = errors.New("too many orders in one export")
	ErrBadRequest     = errors.New("invalid export request")
)
