package middleware

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/jwt"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

type Middleware struct {
	l          log.Logger
	jwtManager jwt.Manager
}

func New(l log.Logger, jwtManager jwt.Manager) Middleware {
	return Middleware{
		l:          l,
		jwtManager: jwtManager,
	}
}
