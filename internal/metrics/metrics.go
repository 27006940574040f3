// Package metrics exposes Prometheus instruments for the quiz server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vytor/xo101/internal/models"
)

const namespace = "xo101"

type Metrics struct {
	registry *prometheus.Registry

	Answers          *prometheus.CounterVec
	CoverageAnswers  *prometheus.CounterVec
	Rating           prometheus.Gauge
	Streak           prometheus.Gauge
	AnalyticsLookups *prometheus.CounterVec
	ContentItems     *prometheus.GaugeVec
	Jobs             *prometheus.CounterVec
	JobDuration      *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
}

// New registers every instrument on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Answers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Puzzle answers by result and difficulty.",
		}, []string{"result", "difficulty"}),
		CoverageAnswers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coverage_answers_total",
			Help:      "Coverage identification answers by result.",
		}, []string{"result"}),
		Rating: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "learner_rating",
			Help:      "Current learner rating.",
		}),
		Streak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "learner_streak",
			Help:      "Current run of correct answers.",
		}),
		AnalyticsLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_lookups_total",
			Help:      "Analytics lookups by outcome (hit or miss).",
		}, []string{"outcome"}),
		ContentItems: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "content_items",
			Help:      "Loaded content items by kind.",
		}, []string{"kind"}),
		Jobs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Background jobs by name and status.",
		}, []string{"job", "status"}),
		JobDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Background job run time.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"job"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAnswer(d models.Difficulty, correct bool) {
	if d == "" {
		d = "unknown"
	}
	m.Answers.WithLabelValues(result(correct), string(d)).Inc()
}

func (m *Metrics) ObserveCoverageAnswer(correct bool) {
	m.CoverageAnswers.WithLabelValues(result(correct)).Inc()
}

func (m *Metrics) SetLearner(state models.LearnerState) {
	m.Rating.Set(float64(state.Rating))
	m.Streak.Set(float64(state.Streak))
}

func (m *Metrics) ObserveLookup(found bool) {
	outcome := "miss"
	if found {
		outcome = "hit"
	}
	m.AnalyticsLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetContent(puzzles, records int) {
	m.ContentItems.WithLabelValues("puzzles").Set(float64(puzzles))
	m.ContentItems.WithLabelValues("analytics").Set(float64(records))
}

// ObserveJob has the signature of worker.Observer.
func (m *Metrics) ObserveJob(name string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.Jobs.WithLabelValues(name, status).Inc()
	m.JobDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

func result(correct bool) string {
	if correct {
		return "correct"
	}
	return "incorrect"
}
