package http

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type Handler struct {
	source   visibility.Source
	reporter visibility.Reporter
	l        log.Logger
}

func New(l log.Logger, source visibility.Source, reporter visibility.Reporter) *Handler {
	return &Handler{
		source:   source,
		reporter: reporter,
		l:        l,
	}
}
