package events

// Buffer collects events for one state transition so they can be released
// only after the transition commits. A failed call flushes nothing, keeping
// the audit trail consistent with the abort-and-revert execution model.
type Buffer struct {
	pending []Event
	sink    Emitter
}

// NewBuffer creates a buffer that forwards to sink on Flush. A nil sink
// discards flushed events.
func NewBuffer(sink Emitter) *Buffer {
	if sink == nil {
		sink = NoopEmitter{}
	}
	return &Buffer{sink: sink}
}

// Emit implements the Emitter interface by queuing the event.
func (b *Buffer) Emit(evt Event) {
	if b == nil || evt == nil {
		return
	}
	b.pending = append(b.pending, evt)
}

// Flush forwards every queued event to the sink and clears the queue.
func (b *Buffer) Flush() {
	if b == nil {
		return
	}
	for _, evt := range b.pending {
		b.sink.Emit(evt)
	}
	b.pending = nil
}

// Reset drops every queued event without forwarding.
func (b *Buffer) Reset() {
	if b == nil {
		return
	}
	b.pending = nil
}

// Pending returns the number of queued events.
func (b *Buffer) Pending() int {
	if b == nil {
		return 0
	}
	return len(b.pending)
}
