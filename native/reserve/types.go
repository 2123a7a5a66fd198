package reserve

import "math/big"

// Config is the singleton reserve record. TotalReserve tracks undistributed
// pooled value, TotalDistributed is a monotonic audit counter, and RatioBps is
// the basis-point share of the reserve eligible for claiming per cycle.
type Config struct {
	Owner            [20]byte
	Ledger           [20]byte
	Governance       [20]byte
	RatioBps         uint32
	TotalReserve     *big.Int
	TotalDistributed *big.Int
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	if c.TotalReserve != nil {
		clone.TotalReserve = new(big.Int).Set(c.TotalReserve)
	}
	if c.TotalDistributed != nil {
		clone.TotalDistributed = new(big.Int).Set(c.TotalDistributed)
	}
	return &clone
}

// Normalize ensures all pointer fields are non-nil for ease of use. The method
// returns the receiver to allow chaining.
func (c *Config) Normalize() *Config {
	if c == nil {
		return nil
	}
	if c.TotalReserve == nil {
		c.TotalReserve = big.NewInt(0)
	}
	if c.TotalDistributed == nil {
		c.TotalDistributed = big.NewInt(0)
	}
	return c
}
