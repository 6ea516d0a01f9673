// Package metrics registers the process-wide Prometheus collectors the
// cache and log driver report against, using promauto the way the corpus's
// event-ingestion worker pool registers its counters/histograms — package
// level vars registered once against the default registerer, read by an
// external exposition handler this module does not own.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheLookups counts Cache.Summary calls by outcome ("hit" or "parsed").
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wowlog_cache_lookups_total",
		Help: "Total number of combat log summary cache lookups, by outcome.",
	}, []string{"outcome"})

	// ParseDuration measures internal/logdriver.Parse wall time in seconds.
	ParseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wowlog_parse_duration_seconds",
		Help:    "Duration of a single combat log parse.",
		Buckets: prometheus.DefBuckets,
	})

	// ParseFailures counts parses that returned an error.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wowlog_parse_failures_total",
		Help: "Total number of combat log parses that failed.",
	})
)
