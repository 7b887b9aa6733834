package http

import (
	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/visibility"
)

type reportReq struct {
	State string `json:"state" binding:"required"`
}

func (r reportReq) toState() (visibility.State, error) {
	return visibility.ParseState(r.State)
}

type stateResp struct {
	State visibility.State `json:"state"`
}
