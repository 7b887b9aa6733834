package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sweepsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_sweeps_total",
		Help: "The total number of reconciliation sweeps, by trigger.",
	}, []string{"trigger"})

	invalidationsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_invalidations_total",
		Help: "The total number of invalidation requests issued to the cache layer.",
	})

	registrationsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "reconcile_registrations_active",
		Help: "The number of live reconciliation registrations.",
	})
)

const (
	triggerVisible = "visible"
	triggerManual  = "manual"
)
