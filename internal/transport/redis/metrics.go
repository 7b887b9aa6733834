package redis

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "transport_messages_total",
	Help: "The total number of push messages received, by outcome.",
}, []string{"outcome"})
