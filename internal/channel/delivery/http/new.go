package http

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type Handler struct {
	scheme *channel.Scheme
	l      log.Logger
}

func New(l log.Logger, scheme *channel.Scheme) *Handler {
	return &Handler{
		scheme: scheme,
		l:      l,
	}
}
