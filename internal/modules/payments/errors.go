package payments

import "errors"

var (
	ErrNoPriorPayment  = errors.New("no prior payment for reference")
	ErrSessionNotFound = errors.New("session not found")
)
