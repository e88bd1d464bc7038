package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ItemsAdded counts wish items successfully appended to the list.
	ItemsAdded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wishwatch_items_added_total",
		Help: "Total number of wish items added",
	})

	// ItemsDeleted counts wish items removed from the list.
	ItemsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wishwatch_items_deleted_total",
		Help: "Total number of wish items deleted",
	})

	// PriceUpdates counts current-price writes (including clears).
	PriceUpdates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wishwatch_price_updates_total",
		Help: "Total number of current price updates",
	})

	// StagedCandidates counts shared candidates seen by the ingestion
	// pipeline, labelled by whether they passed the http-prefix check.
	StagedCandidates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wishwatch_staged_candidates_total",
		Help: "Total number of shared URL candidates, by validation result",
	}, []string{"result"})

	// MalformedRecords counts persisted entries skipped during hydration.
	MalformedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wishwatch_malformed_records_total",
		Help: "Total number of persisted records that failed to decode",
	})

	// StoreFailures counts failed load/save round-trips to the store.
	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wishwatch_store_failures_total",
		Help: "Total number of failed persistence operations",
	})
)

// Handler returns the HTTP handler that exposes the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
