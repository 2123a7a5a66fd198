package state

import (
	"artchain/core/types"
	"artchain/native/reserve"
)

// ReserveState exposes the persistent records of one reserve accountant
// instance, scoped by its component address.
type ReserveState struct {
	m       *Manager
	reserve [20]byte
}

// ReserveState returns a view over the accountant records of the given
// component.
func (m *Manager) ReserveState(addr [20]byte) *ReserveState {
	return &ReserveState{m: m, reserve: addr}
}

func (s *ReserveState) key(parts ...byte) []byte {
	buf := appendAddr([]byte("reserve/"), s.reserve)
	buf = append(buf, '/')
	return append(buf, parts...)
}

// Config loads the singleton reserve record. The boolean reports whether the
// accountant has been initialized.
func (s *ReserveState) Config() (*reserve.Config, bool, error) {
	cfg := new(reserve.Config)
	found, err := s.m.KVGet(s.key([]byte("meta")...), cfg)
	if err != nil || !found {
		return nil, false, err
	}
	return cfg.Normalize(), true, nil
}

// SetConfig persists the singleton reserve record.
func (s *ReserveState) SetConfig(cfg *reserve.Config) error {
	return s.m.KVPut(s.key([]byte("meta")...), cfg.Clone().Normalize())
}

// LastClaim returns the timestamp of the holder's most recent successful
// claim, zero when the holder has never claimed.
func (s *ReserveState) LastClaim(addr [20]byte) (uint64, error) {
	key := s.key([]byte("claim")...)
	key = append(key, '/')
	key = append(key, addr[:]...)
	var ts uint64
	found, err := s.m.KVGet(key, &ts)
	if err != nil || !found {
		return 0, err
	}
	return ts, nil
}

// SetLastClaim records the holder's claim timestamp.
func (s *ReserveState) SetLastClaim(addr [20]byte, ts uint64) error {
	key := s.key([]byte("claim")...)
	key = append(key, '/')
	key = append(key, addr[:]...)
	return s.m.KVPut(key, ts)
}

// GetAccount proxies external value account reads for the engine.
func (s *ReserveState) GetAccount(addr [20]byte) (*types.Account, error) {
	return s.m.GetAccount(addr)
}

// PutAccount proxies external value account writes for the engine.
func (s *ReserveState) PutAccount(addr [20]byte, account *types.Account) error {
	return s.m.PutAccount(addr, account)
}
