package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
)

var operations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_operations_total",
		Help: "How many ledger mutations were performed, partitioned by operation and transaction type.",
	},
	[]string{"operation", "type"},
)

// Metrics returns the Prometheus collectors of the ledger so that the router
// can register them with the default registry.
func Metrics() []prometheus.Collector {
	return []prometheus.Collector{operations}
}
