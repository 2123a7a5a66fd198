package token

// Metadata describes the reward unit tracked by the ledger. It is written once
// during initialization and, apart from the owner, never changes afterwards.
type Metadata struct {
	Name     string
	Symbol   string
	Decimals uint8
	Owner    [20]byte
}

// Clone returns a copy of the metadata.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	clone := *m
	return &clone
}
