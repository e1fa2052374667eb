package quotation

import "errors"

var (
	// -- Validation & Input --
	ErrDiscountOutOfRange = errors.New("discount outside [0,1]")

	// -- Resource State --
	ErrQuotationNotFound   = errors.New("quotation not found")
	ErrQuotationNotPending = errors.New("quotation is not pending")

	// -- Concurrency --
	ErrSelectionInFlight = errors.New("a selection is already in flight for this request")
)
