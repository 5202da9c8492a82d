package staking

import "errors"

var (
	ErrTokenNotFound       = errors.New("token not found")
	ErrDuplicateToken      = errors.New("duplicate token id")
	ErrMissingTokenID      = errors.New("token id is required")
	ErrNegativeBalance     = errors.New("balance must not be negative")
	ErrNotLand             = errors.New("token is not a land card")
	ErrInvalidPlotCount    = errors.New("land card has no valid plot count")
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrLandNotFound        = errors.New("land instance not found")
	ErrLandInUse           = errors.New("land instance has occupied plots")
	ErrPlotOutOfRange      = errors.New("plot index out of range")
	ErrPlotOccupied        = errors.New("plot is occupied")
	ErrIncompatibleToken   = errors.New("token type is not allowed on this land")
	ErrNoCompatibleToken   = errors.New("no compatible token available")
	ErrCorruptState        = errors.New("staking state is inconsistent")
)
