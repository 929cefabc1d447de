package chunkstore

import (
	"github.com/LeeDigitalWorks/chunkstore/pkg/debug"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// usedBytesGauge tracks the bytes currently accounted to the store
	usedBytesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "chunkstore",
		Subsystem: "store",
		Name:      "used_bytes",
		Help:      "Bytes currently accounted to stored chunks",
	})

	// chunkCount tracks the number of chunks currently stored
	chunkCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "chunkstore",
		Subsystem: "store",
		Name:      "chunks_total",
		Help:      "Number of chunks currently stored",
	})

	// operations tracks store operations by type
	operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chunkstore",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Total number of store operations",
	}, []string{"operation"}) // operation: "put", "get", "delete"

	// limitHits tracks puts rejected for lack of space
	limitHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "chunkstore",
		Subsystem: "store",
		Name:      "limit_hits_total",
		Help:      "Number of puts rejected because the storage limit was hit",
	})
)

func init() {
	// Register metrics with the global registry
	debug.Registry().MustRegister(
		usedBytesGauge,
		chunkCount,
		operations,
		limitHits,
	)
}

func (s *Store) updateGaugesLocked() {
	usedBytesGauge.Set(float64(s.usedBytes))
	chunkCount.Set(float64(len(s.index)))
}
