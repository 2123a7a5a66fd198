package token

import "errors"

var (
	ErrNilState              = errors.New("token: state not configured")
	ErrNotInitialized        = errors.New("token: not initialized")
	ErrAlreadyInitialized    = errors.New("token: already initialized")
	ErrNotOwner              = errors.New("token: caller is not the owner")
	ErrNotMinter             = errors.New("token: caller is not a minter")
	ErrZeroAddress           = errors.New("token: zero address")
	ErrInvalidAmount         = errors.New("token: amount must be positive")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
)
