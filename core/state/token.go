package state

import (
	"math/big"

	"artchain/native/token"
)

// TokenState exposes the persistent records of one unit ledger instance. All
// keys are scoped by the component address so multiple deployments can share
// the same backing store.
type TokenState struct {
	m     *Manager
	token [20]byte
}

// TokenState returns a view over the ledger records of the given component.
func (m *Manager) TokenState(addr [20]byte) *TokenState {
	return &TokenState{m: m, token: addr}
}

func (s *TokenState) key(parts ...byte) []byte {
	buf := appendAddr([]byte("token/"), s.token)
	buf = append(buf, '/')
	return append(buf, parts...)
}

func (s *TokenState) addrKey(kind string, addr [20]byte) []byte {
	buf := s.key([]byte(kind)...)
	buf = append(buf, '/')
	return append(buf, addr[:]...)
}

// Metadata loads the unit metadata. The boolean reports whether the ledger has
// been initialized.
func (s *TokenState) Metadata() (*token.Metadata, bool, error) {
	meta := new(token.Metadata)
	found, err := s.m.KVGet(s.key([]byte("meta")...), meta)
	if err != nil || !found {
		return nil, false, err
	}
	return meta, true, nil
}

// SetMetadata persists the unit metadata.
func (s *TokenState) SetMetadata(meta *token.Metadata) error {
	return s.m.KVPut(s.key([]byte("meta")...), meta)
}

// Supply returns the recorded total supply, defaulting to zero.
func (s *TokenState) Supply() (*big.Int, error) {
	supply := new(big.Int)
	found, err := s.m.KVGet(s.key([]byte("supply")...), supply)
	if err != nil {
		return nil, err
	}
	if !found {
		return bigZero(), nil
	}
	return supply, nil
}

// SetSupply overwrites the recorded total supply.
func (s *TokenState) SetSupply(amount *big.Int) error {
	return s.m.KVPut(s.key([]byte("supply")...), copyBig(amount))
}

// Balance returns the unit balance of the provided holder, defaulting to zero.
func (s *TokenState) Balance(addr [20]byte) (*big.Int, error) {
	balance := new(big.Int)
	found, err := s.m.KVGet(s.addrKey("balance", addr), balance)
	if err != nil {
		return nil, err
	}
	if !found {
		return bigZero(), nil
	}
	return balance, nil
}

// SetBalance overwrites the unit balance of the provided holder.
func (s *TokenState) SetBalance(addr [20]byte, amount *big.Int) error {
	return s.m.KVPut(s.addrKey("balance", addr), copyBig(amount))
}

// Allowance returns the remaining spend allowance, defaulting to zero.
func (s *TokenState) Allowance(owner, spender [20]byte) (*big.Int, error) {
	key := s.addrKey("allowance", owner)
	key = append(key, '/')
	key = append(key, spender[:]...)
	allowance := new(big.Int)
	found, err := s.m.KVGet(key, allowance)
	if err != nil {
		return nil, err
	}
	if !found {
		return bigZero(), nil
	}
	return allowance, nil
}

// SetAllowance overwrites the spend allowance.
func (s *TokenState) SetAllowance(owner, spender [20]byte, amount *big.Int) error {
	key := s.addrKey("allowance", owner)
	key = append(key, '/')
	key = append(key, spender[:]...)
	return s.m.KVPut(key, copyBig(amount))
}

// IsMinter reports whether the address is currently an authorized minter.
func (s *TokenState) IsMinter(addr [20]byte) (bool, error) {
	var member bool
	found, err := s.m.KVGet(s.addrKey("minter", addr), &member)
	if err != nil || !found {
		return false, err
	}
	return member, nil
}

// SetMinter records the minter membership flag for the address. Removal keeps
// the record and flips the flag, which excludes the address from authorization
// checks.
func (s *TokenState) SetMinter(addr [20]byte, member bool) error {
	return s.m.KVPut(s.addrKey("minter", addr), member)
}
