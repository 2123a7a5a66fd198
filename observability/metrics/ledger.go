package metrics

import (
	"math/big"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics exposes the operational signals of the reward ledger: revenue
// intake, payout volume, issuance, and the live reserve figures.
type LedgerMetrics struct {
	revenueReceived  prometheus.Counter
	sharesClaimed    prometheus.Counter
	rewardsIssued    prometheus.Counter
	unitsMinted      prometheus.Counter
	reserveBalance   prometheus.Gauge
	totalDistributed prometheus.Gauge
	subscriberCount  prometheus.Gauge
}

var (
	ledgerOnce     sync.Once
	ledgerRegistry *LedgerMetrics
)

// Ledger returns the process-wide ledger metrics, registering them on first
// use.
func Ledger() *LedgerMetrics {
	ledgerOnce.Do(func() {
		ledgerRegistry = &LedgerMetrics{
			revenueReceived: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "artchain_revenue_received_total",
				Help: "Count of revenue deposits booked into the reserve.",
			}),
			sharesClaimed: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "artchain_shares_claimed_total",
				Help: "Count of successful holder reserve claims.",
			}),
			rewardsIssued: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "artchain_rewards_issued_total",
				Help: "Count of artist reward issuances.",
			}),
			unitsMinted: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "artchain_units_minted_total",
				Help: "Count of unit ledger mint operations.",
			}),
			reserveBalance: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "artchain_reserve_balance",
				Help: "Undistributed reserve in smallest denomination.",
			}),
			totalDistributed: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "artchain_reserve_distributed",
				Help: "Cumulative value paid out of the reserve.",
			}),
			subscriberCount: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "artchain_subscriber_count",
				Help: "Current subscriber count feeding the reward factor.",
			}),
		}
		prometheus.MustRegister(
			ledgerRegistry.revenueReceived,
			ledgerRegistry.sharesClaimed,
			ledgerRegistry.rewardsIssued,
			ledgerRegistry.unitsMinted,
			ledgerRegistry.reserveBalance,
			ledgerRegistry.totalDistributed,
			ledgerRegistry.subscriberCount,
		)
	})
	return ledgerRegistry
}

func amountToFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}

// ObserveRevenue records a revenue deposit and the resulting reserve level.
func (m *LedgerMetrics) ObserveRevenue(totalReserve *big.Int) {
	if m == nil {
		return
	}
	m.revenueReceived.Inc()
	m.reserveBalance.Set(amountToFloat(totalReserve))
}

// ObserveClaim records a holder claim and the resulting reserve figures.
func (m *LedgerMetrics) ObserveClaim(totalReserve, totalDistributed *big.Int) {
	if m == nil {
		return
	}
	m.sharesClaimed.Inc()
	m.reserveBalance.Set(amountToFloat(totalReserve))
	m.totalDistributed.Set(amountToFloat(totalDistributed))
}

// ObserveWithdrawal records a governance withdrawal and the reserve level.
func (m *LedgerMetrics) ObserveWithdrawal(totalReserve *big.Int) {
	if m == nil {
		return
	}
	m.reserveBalance.Set(amountToFloat(totalReserve))
}

// ObserveReward records an artist reward issuance.
func (m *LedgerMetrics) ObserveReward() {
	if m == nil {
		return
	}
	m.rewardsIssued.Inc()
}

// ObserveMint records a unit ledger mint.
func (m *LedgerMetrics) ObserveMint() {
	if m == nil {
		return
	}
	m.unitsMinted.Inc()
}

// ObserveSubscribers records the current subscriber count.
func (m *LedgerMetrics) ObserveSubscribers(count uint64) {
	if m == nil {
		return
	}
	m.subscriberCount.Set(float64(count))
}
