package core

import (
	"github.com/ethereum/go-ethereum/common"

	"artchain/core/events"
	"artchain/core/state"
	"artchain/storage/trie"
)

// Processor executes mutating ledger calls one at a time with all-or-nothing
// semantics: the call either applies its full effect, including the events it
// emitted, or leaves no trace. This is the single point where the execution
// model's atomicity guarantee is enforced, so engines never have to undo
// their own writes.
type Processor struct {
	tr      *trie.Trie
	manager *state.Manager
	buffer  *events.Buffer
}

// NewProcessor creates a processor over the provided trie. Events emitted
// during a successful call are forwarded to sink; a nil sink discards them.
func NewProcessor(tr *trie.Trie, sink events.Emitter) *Processor {
	return &Processor{
		tr:      tr,
		manager: state.NewManager(tr),
		buffer:  events.NewBuffer(sink),
	}
}

// Manager returns the state manager the processor executes against.
func (p *Processor) Manager() *state.Manager {
	return p.manager
}

// Events returns the emitter engines should publish to. Emissions are held
// back until the surrounding call commits.
func (p *Processor) Events() events.Emitter {
	return p.buffer
}

// Execute runs one mutating call. When fn returns an error every state write
// and queued event from the call is discarded and the error is returned
// unchanged.
func (p *Processor) Execute(fn func(m *state.Manager) error) error {
	snapshot := p.tr.Snapshot()
	if err := fn(p.manager); err != nil {
		p.tr.RevertToSnapshot(snapshot)
		p.buffer.Reset()
		return err
	}
	p.buffer.Flush()
	return nil
}

// Commit persists all executed calls to the backing database and returns the
// resulting state root.
func (p *Processor) Commit() (common.Hash, error) {
	return p.tr.Commit()
}
