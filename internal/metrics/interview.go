package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Turn outcomes
const (
	OutcomeContinue = "continue"
	OutcomeEnd      = "end"
	OutcomeError    = "error"
)

var (
	sessionsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Interview sessions started",
	}, []string{"category"})

	turns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "turns_total",
		Help:      "Answered turns by outcome",
	}, []string{"category", "outcome"})

	scores = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "answer_score",
		Help:      "Scores assigned to candidate answers",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	}, []string{"category"})

	repetitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repetitions_total",
		Help:      "Answers rejected as verbatim repeats",
	}, []string{"category"})

	scoreFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "score_parse_fallbacks_total",
		Help:      "Evaluations whose score could not be parsed and used the default",
	})

	collaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "collaborator_failures_total",
		Help:      "Failed calls to retrieval or completion services",
	}, []string{"collaborator"})
)

func SessionStarted(category string) {
	sessionsStarted.WithLabelValues(category).Inc()
}

func TurnCompleted(category, outcome string) {
	turns.WithLabelValues(category, outcome).Inc()
}

func ObserveScore(category string, score int) {
	scores.WithLabelValues(category).Observe(float64(score))
}

func Repetition(category string) {
	repetitions.WithLabelValues(category).Inc()
}

func ScoreFallback() {
	scoreFallbacks.Inc()
}

// CollaboratorFailure counts a failed call; collaborator is "retrieval" or "completion"
func CollaboratorFailure(collaborator string) {
	collaboratorFailures.WithLabelValues(collaborator).Inc()
}
