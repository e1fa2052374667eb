package donation

import "errors"

var (
	ErrRequestNotFound = errors.New("donation request not found")
)
