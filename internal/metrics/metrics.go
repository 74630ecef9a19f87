// Package metrics provides prometheus collectors describing the state of a node.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cryptochain"

// Metrics holds node collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	blocksMined        prometheus.Counter
	transactions       prometheus.Counter
	chainReplacements  *prometheus.CounterVec
	chainLength        prometheus.Gauge
	transactionPoolLen prometheus.Gauge
}

// New creates node collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		blocksMined: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_mined_total",
			Help:      "Number of blocks mined by this node.",
		}),
		transactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_conducted_total",
			Help:      "Number of transactions conducted by the node wallet.",
		}),
		chainReplacements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chain_replacements_total",
			Help:      "Number of incoming chains by replacement result.",
		}, []string{"result"}),
		chainLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_length",
			Help:      "Number of blocks on the local chain.",
		}),
		transactionPoolLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transaction_pool_size",
			Help:      "Number of transactions waiting in the pool.",
		}),
	}
	reg.MustRegister(m.blocksMined, m.transactions, m.chainReplacements, m.chainLength, m.transactionPoolLen)
	return m
}

// BlockMined records a block mined locally.
func (m *Metrics) BlockMined() {
	if m == nil {
		return
	}
	m.blocksMined.Inc()
}

// TransactionConducted records a transaction conducted by the node wallet.
func (m *Metrics) TransactionConducted() {
	if m == nil {
		return
	}
	m.transactions.Inc()
}

// ChainReplaced records the result of an incoming chain: "accepted" or "rejected".
func (m *Metrics) ChainReplaced(accepted bool) {
	if m == nil {
		return
	}
	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.chainReplacements.WithLabelValues(result).Inc()
}

// SetState updates the chain length and pool size gauges.
func (m *Metrics) SetState(chainLength, poolSize int) {
	if m == nil {
		return
	}
	m.chainLength.Set(float64(chainLength))
	m.transactionPoolLen.Set(float64(poolSize))
}
