package rewards

import "math/big"

// Config is the singleton reward engine record. SubscriberCount is derived
// from subscriber set transitions and feeds the growth-indexed reward factor.
type Config struct {
	Owner           [20]byte
	Ledger          [20]byte
	Reserve         [20]byte
	SubscriberCount uint64
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Artist is the per-contributor record. It is created once by registration and
// never deleted; TotalEarned only grows.
type Artist struct {
	Registered   bool
	TotalEarned  *big.Int
	RegisteredAt uint64
	LastReward   uint64
}

// Clone returns a deep copy of the artist record.
func (a *Artist) Clone() *Artist {
	if a == nil {
		return nil
	}
	clone := *a
	if a.TotalEarned != nil {
		clone.TotalEarned = new(big.Int).Set(a.TotalEarned)
	}
	return &clone
}

// Normalize ensures all pointer fields are non-nil for ease of use.
func (a *Artist) Normalize() *Artist {
	if a == nil {
		return nil
	}
	if a.TotalEarned == nil {
		a.TotalEarned = big.NewInt(0)
	}
	return a
}
