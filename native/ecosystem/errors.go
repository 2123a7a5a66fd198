package ecosystem

import "errors"

var (
	ErrNilProcessor     = errors.New("ecosystem: processor not configured")
	ErrAlreadyDeployed  = errors.New("ecosystem: already deployed")
	ErrNotDeployed      = errors.New("ecosystem: not deployed")
	ErrZeroAddress      = errors.New("ecosystem: zero address")
	ErrUnknownComponent = errors.New("ecosystem: unknown component")
	ErrNotOwner         = errors.New("ecosystem: caller is not the component owner")
)
