package state

// Component kinds recorded by the bootstrap orchestrator.
const (
	ComponentKindToken   = "token"
	ComponentKindReserve = "reserve"
	ComponentKindRewards = "rewards"
)

// ComponentRecord tracks the deployed logic behind a component address. The
// version is bumped on every authorized logic swap while the component's own
// records stay untouched.
type ComponentRecord struct {
	Kind      string
	Version   uint64
	CreatedAt uint64
}

var componentPrefix = []byte("ecosystem/component/")

// Component loads the registry record for the given component address.
func (m *Manager) Component(addr [20]byte) (*ComponentRecord, bool, error) {
	record := new(ComponentRecord)
	found, err := m.KVGet(appendAddr(componentPrefix, addr), record)
	if err != nil || !found {
		return nil, false, err
	}
	return record, true, nil
}

// SetComponent persists the registry record for the given component address.
func (m *Manager) SetComponent(addr [20]byte, record *ComponentRecord) error {
	stored := *record
	return m.KVPut(appendAddr(componentPrefix, addr), &stored)
}
