package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"realty_extractor/internal/domain/entity"
)

const namespace = "realty_extractor"

// Collectors — метрики извлечения. Реализует extraction.Observer.
type Collectors struct {
	extractions      *prometheus.CounterVec
	quality          prometheus.Histogram
	duration         prometheus.Histogram
	repairs          *prometheus.CounterVec
	fallbackFailures *prometheus.CounterVec
}

func NewCollectors(reg prometheus.Registerer) *Collectors {
	factory := promauto.With(reg)

	return &Collectors{
		extractions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extractions_total",
			Help:      "Listings processed, by detected property type.",
		}, []string{"property_type"}),
		quality: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_quality",
			Help:      "Extraction quality score.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_duration_seconds",
			Help:      "Time spent extracting one listing.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
		}),
		repairs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "repairs_total",
			Help:      "Post-extraction repairs applied, by rule.",
		}, []string{"rule"}),
		fallbackFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallback_failures_total",
			Help:      "Fallback classifier failures, by call kind.",
		}, []string{"kind"}),
	}
}

func (c *Collectors) ObserveExtraction(e entity.Extraction) {
	label := e.Result.PropertyType.String()
	if label == "" {
		label = "unknown"
	}

	c.extractions.WithLabelValues(label).Inc()
	c.quality.Observe(e.Result.ExtractionQuality)
	c.duration.Observe(e.Diagnostics.ExtractionTime.Seconds())
}

func (c *Collectors) ObserveRepair(rule string) {
	c.repairs.WithLabelValues(rule).Inc()
}

func (c *Collectors) ObserveFallbackFailure(kind string) {
	c.fallbackFailures.WithLabelValues(kind).Inc()
}
