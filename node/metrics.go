package node

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics tracks the handful of counters worth exposing for a devnet:
// blocks sealed, and transactions submitted that made it past RPC-level
// decoding (TxPipeline classifies accepted vs rejected itself, visible
// via the stored transaction's finality status, not as an RPC error).
type metrics struct {
	blocksSealed prometheus.Counter
	txSubmitted  prometheus.Counter
}

var (
	metricsOnce   sync.Once
	sharedMetrics *metrics
)

// newMetrics returns the process-wide counters, registering them with the
// default prometheus registry on first use only, so that constructing more
// than one Node in a process does not register the same names twice.
func newMetrics() *metrics {
	metricsOnce.Do(func() { sharedMetrics = registerMetrics() })
	return sharedMetrics
}

func registerMetrics() *metrics {
	return &metrics{
		blocksSealed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "devnet",
			Name:      "blocks_sealed_total",
			Help:      "Number of blocks sealed by the block builder.",
		}),
		txSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "devnet",
			Name:      "transactions_submitted_total",
			Help:      "Number of transactions submitted through the JSON-RPC add-transaction methods.",
		}),
	}
}
