package state

// Pauses is a live view over the persisted per-module pause toggles. It
// satisfies the guard interface used by every engine.
type Pauses struct {
	m *Manager
}

var pausePrefix = []byte("system/pause/")

func pauseKey(module string) []byte {
	return append(append([]byte{}, pausePrefix...), module...)
}

// Pauses returns the pause view backed by this manager.
func (m *Manager) Pauses() *Pauses {
	return &Pauses{m: m}
}

// IsPaused reports whether the module toggle is set. Unreadable state counts
// as not paused so a corrupt toggle cannot brick every module at once.
func (p *Pauses) IsPaused(module string) bool {
	if p == nil || p.m == nil || module == "" {
		return false
	}
	var paused bool
	found, err := p.m.KVGet(pauseKey(module), &paused)
	if err != nil || !found {
		return false
	}
	return paused
}

// SetPaused flips the pause toggle for the module.
func (m *Manager) SetPaused(module string, paused bool) error {
	return m.KVPut(pauseKey(module), paused)
}
