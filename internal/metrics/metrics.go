package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagegen_generations_total",
		Help: "Generation attempts by strategy and outcome code.",
	}, []string{"strategy", "code"})

	GenerationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pagegen_generation_duration_seconds",
		Help:    "Time spent producing one document, including LLM calls.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"strategy"})

	PreviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagegen_previews_total",
		Help: "Preview requests by strategy and outcome code.",
	}, []string{"strategy", "code"})

	BatchCombinations = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pagegen_batch_combinations",
		Help:    "Combinations requested per batch.",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
	})

	CloneFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagegen_clone_failures_total",
		Help: "Metadata or taxonomy writes that failed while cloning.",
	}, []string{"pass"})

	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pagegen_llm_requests_total",
		Help: "LLM round trips by operation and outcome code.",
	}, []string{"operation", "code"})

	EventPublishErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pagegen_event_publish_errors_total",
		Help: "DocumentGenerated events that could not be published.",
	})
)
