package state

import "artchain/native/rewards"

// RewardsState exposes the persistent records of one reward engine instance,
// scoped by its component address.
type RewardsState struct {
	m      *Manager
	engine [20]byte
}

// RewardsState returns a view over the reward engine records of the given
// component.
func (m *Manager) RewardsState(addr [20]byte) *RewardsState {
	return &RewardsState{m: m, engine: addr}
}

func (s *RewardsState) key(parts ...byte) []byte {
	buf := appendAddr([]byte("rewards/"), s.engine)
	buf = append(buf, '/')
	return append(buf, parts...)
}

func (s *RewardsState) addrKey(kind string, addr [20]byte) []byte {
	buf := s.key([]byte(kind)...)
	buf = append(buf, '/')
	return append(buf, addr[:]...)
}

// Config loads the singleton engine record. The boolean reports whether the
// engine has been initialized.
func (s *RewardsState) Config() (*rewards.Config, bool, error) {
	cfg := new(rewards.Config)
	found, err := s.m.KVGet(s.key([]byte("meta")...), cfg)
	if err != nil || !found {
		return nil, false, err
	}
	return cfg, true, nil
}

// SetConfig persists the singleton engine record.
func (s *RewardsState) SetConfig(cfg *rewards.Config) error {
	return s.m.KVPut(s.key([]byte("meta")...), cfg.Clone())
}

// Artist loads the contributor record for the address.
func (s *RewardsState) Artist(addr [20]byte) (*rewards.Artist, bool, error) {
	artist := new(rewards.Artist)
	found, err := s.m.KVGet(s.addrKey("artist", addr), artist)
	if err != nil || !found {
		return nil, false, err
	}
	return artist.Normalize(), true, nil
}

// SetArtist persists the contributor record for the address.
func (s *RewardsState) SetArtist(addr [20]byte, artist *rewards.Artist) error {
	return s.m.KVPut(s.addrKey("artist", addr), artist.Clone().Normalize())
}

// IsOperator reports whether the address is currently an operator.
func (s *RewardsState) IsOperator(addr [20]byte) (bool, error) {
	var member bool
	found, err := s.m.KVGet(s.addrKey("operator", addr), &member)
	if err != nil || !found {
		return false, err
	}
	return member, nil
}

// SetOperator records the operator membership flag for the address.
func (s *RewardsState) SetOperator(addr [20]byte, member bool) error {
	return s.m.KVPut(s.addrKey("operator", addr), member)
}

// IsSubscriber reports whether the address is currently counted as a
// subscriber.
func (s *RewardsState) IsSubscriber(addr [20]byte) (bool, error) {
	var member bool
	found, err := s.m.KVGet(s.addrKey("subscriber", addr), &member)
	if err != nil || !found {
		return false, err
	}
	return member, nil
}

// SetSubscriber records the subscriber membership flag for the address. The
// derived count lives in the engine config and moves only on real
// membership transitions.
func (s *RewardsState) SetSubscriber(addr [20]byte, member bool) error {
	return s.m.KVPut(s.addrKey("subscriber", addr), member)
}
