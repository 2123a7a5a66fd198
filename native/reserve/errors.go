package reserve

import "errors"

var (
	ErrNilState           = errors.New("reserve: state not configured")
	ErrNoLedger           = errors.New("reserve: unit ledger not configured")
	ErrNotInitialized     = errors.New("reserve: not initialized")
	ErrAlreadyInitialized = errors.New("reserve: already initialized")
	ErrNotOwner           = errors.New("reserve: caller is not the owner")
	ErrNotGovernance      = errors.New("reserve: caller is not the governance caller")
	ErrZeroAddress        = errors.New("reserve: zero address")
	ErrInvalidRatio       = errors.New("reserve: distribution ratio exceeds 10000 basis points")
	ErrInvalidAmount      = errors.New("reserve: amount must be positive")
	ErrInsufficientFunds  = errors.New("reserve: insufficient balance")
	ErrNoUnitBalance      = errors.New("reserve: caller holds no units")
	ErrNothingToClaim     = errors.New("reserve: nothing to claim")
	ErrClaimCooldown      = errors.New("reserve: claim cooldown active")
	ErrInsufficientReserve = errors.New("reserve: withdrawal exceeds reserve")
	ErrTransferFailed      = errors.New("reserve: value transfer failed")
)
