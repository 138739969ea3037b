package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type RevshareMetrics struct {
	depositsTotal    *prometheus.CounterVec
	reportsTotal     *prometheus.CounterVec
	claimsTotal      prometheus.Counter
	claimPayoutSum   prometheus.Counter
	rejectedTotal    *prometheus.CounterVec
	pendingTransfers prometheus.Gauge
}

var (
	revshareOnce     sync.Once
	revshareRegistry *RevshareMetrics
)

func Revshare() *RevshareMetrics {
	revshareOnce.Do(func() {
		revshareRegistry = &RevshareMetrics{
			depositsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "revshare_deposits_total",
				Help: "Count of accepted revenue deposits by token.",
			}, []string{"token"}),
			reportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "revshare_reports_total",
				Help: "Count of revenue reports by outcome (initial, override, rejected).",
			}, []string{"outcome"}),
			claimsTotal: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "revshare_claims_total",
				Help: "Count of successful claim calls.",
			}),
			claimPayoutSum: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "revshare_claim_payout_sum",
				Help: "Cumulative payout across all claims, in payout-asset base units.",
			}),
			rejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "revshare_rejected_total",
				Help: "Count of rejected mutating operations by reason.",
			}, []string{"reason"}),
			pendingTransfers: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "revshare_pending_issuer_transfers",
				Help: "Number of issuer transfers currently in flight.",
			}),
		}
		prometheus.MustRegister(
			revshareRegistry.depositsTotal,
			revshareRegistry.reportsTotal,
			revshareRegistry.claimsTotal,
			revshareRegistry.claimPayoutSum,
			revshareRegistry.rejectedTotal,
			revshareRegistry.pendingTransfers,
		)
	})
	return revshareRegistry
}

func (m *RevshareMetrics) ObserveDeposit(token string) {
	if m == nil {
		return
	}
	if token == "" {
		token = "unknown"
	}
	m.depositsTotal.WithLabelValues(token).Inc()
}

func (m *RevshareMetrics) ObserveReport(outcome string) {
	if m == nil {
		return
	}
	if outcome == "" {
		outcome = "unknown"
	}
	m.reportsTotal.WithLabelValues(outcome).Inc()
}

func (m *RevshareMetrics) ObserveClaim(payout float64) {
	if m == nil {
		return
	}
	m.claimsTotal.Inc()
	if payout > 0 {
		m.claimPayoutSum.Add(payout)
	}
}

func (m *RevshareMetrics) IncRejected(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	m.rejectedTotal.WithLabelValues(reason).Inc()
}

func (m *RevshareMetrics) AddPendingTransfer(delta float64) {
	if m == nil {
		return
	}
	m.pendingTransfers.Add(delta)
}
