package controllers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	affectationsValideesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigrh_affectations_validees_total",
		Help: "Number of affectations committed by the assignment engine.",
	})
	affectationsTermineesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigrh_affectations_terminees_total",
		Help: "Number of affectations closed.",
	})
	affectationsRejeteesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigrh_affectations_rejetees_total",
		Help: "Number of rejected assignment proposals, by error code.",
	}, []string{"code"})
	propositionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sigrh_propositions_rank_duration_seconds",
		Help:    "Latency of vacancy ranking requests.",
		Buckets: prometheus.DefBuckets,
	})
)
