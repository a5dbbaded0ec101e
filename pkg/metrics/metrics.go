package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup result label values.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var (
	FilesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firindex_files_recorded_total",
		Help: "Total number of files recorded into a provider.",
	})

	ClassifiersRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firindex_classifiers_recorded_total",
		Help: "Total number of classifiers recorded, by declaration kind.",
	}, []string{"kind"})

	CallablesRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firindex_callables_recorded_total",
		Help: "Total number of callable declarations recorded.",
	})

	RecordFileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "firindex_record_file_seconds",
		Help:    "Time spent indexing a single file.",
		Buckets: prometheus.DefBuckets,
	})

	CallableLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "firindex_callable_lookups_total",
		Help: "Total number of callable symbol lookups, by result.",
	}, []string{"result"})

	SymbolsMaterializedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firindex_symbols_materialized_total",
		Help: "Total number of symbols constructed from declarations.",
	})

	RebuildsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "firindex_rebuilds_total",
		Help: "Total number of provider snapshots rebuilt from changed files.",
	})

	IndexedFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "firindex_indexed_files",
		Help: "Number of files in the current provider snapshot.",
	})
)
