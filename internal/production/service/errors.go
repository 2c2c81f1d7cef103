package service

import "errors"

// Business failures surfaced to the operator. Handlers match these with
// errors.Is; the wrapped message always carries the concrete numbers so the
// UI can show them as-is.
var (
	ErrCapacityExceeded           = errors.New("capacity exceeded")
	ErrInvalidQuantity            = errors.New("invalid quantity")
	ErrInsufficientCompletedStock = errors.New("insufficient completed stock")
	ErrDuplicateReference         = errors.New("duplicate reference")
	ErrInvalidCredentials         = errors.New("invalid credentials")
)
