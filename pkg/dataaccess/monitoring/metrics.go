package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MongoLatency is the per-query latency of the Mongo data access layers.
	MongoLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "dataaccess_mongo_latency",
			Help: "Latency of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)

	// MongoTotalRequests is the total number of Mongo queries issued.
	MongoTotalRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataaccess_mongo_total_requests",
			Help: "Total number of Mongo queries",
		},
		[]string{"dal", "query", "database", "collection"},
	)
)
