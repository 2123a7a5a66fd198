package rewards

import "errors"

var (
	ErrNilState           = errors.New("rewards: state not configured")
	ErrNoLedger           = errors.New("rewards: unit ledger not configured")
	ErrNoReserve          = errors.New("rewards: reserve accountant not configured")
	ErrNotInitialized     = errors.New("rewards: not initialized")
	ErrAlreadyInitialized = errors.New("rewards: already initialized")
	ErrNotOwner           = errors.New("rewards: caller is not the owner")
	ErrNotOperator        = errors.New("rewards: caller is not an operator")
	ErrZeroAddress        = errors.New("rewards: zero address")
	ErrArtistExists       = errors.New("rewards: artist already registered")
	ErrArtistNotFound     = errors.New("rewards: artist not registered")
	ErrRewardCooldown     = errors.New("rewards: reward cooldown active")
	ErrInvalidScore       = errors.New("rewards: contribution score exceeds 100")
	ErrInvalidAmount      = errors.New("rewards: amount must be positive")
)
