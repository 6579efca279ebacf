package entity

import "errors"

var (
	ErrIDIsRequired         = errors.New("id is required")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrCurrencyNotSupported = errors.New("currency not supported")
	ErrSameAccount          = errors.New("source and target account must differ")
	ErrPINLocked            = errors.New("card pin is locked")
	ErrCardNotActive        = errors.New("card is not active")
)
