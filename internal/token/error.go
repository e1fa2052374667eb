package token

import "errors"

var (
	ErrNoToken      = errors.New("no token stored")
	ErrInvalidToken = errors.New("invalid token")
)
