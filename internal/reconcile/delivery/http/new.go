package http

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type Handler struct {
	uc reconcile.UseCase
	l  log.Logger
}

func New(l log.Logger, uc reconcile.UseCase) *Handler {
	return &Handler{
		uc: uc,
		l:  l,
	}
}
