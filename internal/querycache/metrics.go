package querycache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	refetchCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "querycache_refetch_total",
		Help: "The total number of refetches, by outcome.",
	}, []string{"outcome"})

	hitCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "querycache_hit_total",
		Help: "The total number of Get calls served from memory.",
	})

	applyCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "querycache_apply_total",
		Help: "The total number of pushed updates applied to the cache.",
	})
)
