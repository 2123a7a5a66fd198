package metrics

import "artchain/core/events"

// EventExporter is an events.Emitter that mirrors committed ledger events into
// Prometheus metrics before forwarding them to the next sink.
type EventExporter struct {
	metrics *LedgerMetrics
	next    events.Emitter
}

// NewEventExporter wraps next with metric observation. A nil next discards the
// events after observing them.
func NewEventExporter(next events.Emitter) *EventExporter {
	if next == nil {
		next = events.NoopEmitter{}
	}
	return &EventExporter{metrics: Ledger(), next: next}
}

// Emit implements events.Emitter.
func (x *EventExporter) Emit(evt events.Event) {
	if x == nil || evt == nil {
		return
	}
	switch e := evt.(type) {
	case events.ReserveRevenueReceived:
		x.metrics.ObserveRevenue(e.TotalReserve)
	case events.ReserveShareClaimed:
		x.metrics.ObserveClaim(e.TotalReserve, e.TotalDistributed)
	case events.ReserveRewardWithdrawn:
		x.metrics.ObserveWithdrawal(e.TotalReserve)
	case events.RewardsArtistRewarded:
		x.metrics.ObserveReward()
	case events.TokenMinted:
		x.metrics.ObserveMint()
	case events.RewardsSubscriberAdded:
		x.metrics.ObserveSubscribers(e.Count)
	case events.RewardsSubscriberRemoved:
		x.metrics.ObserveSubscribers(e.Count)
	}
	x.next.Emit(evt)
}
