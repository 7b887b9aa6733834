package http

import (
	"net/http"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/channel"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/errors"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

var errMap = response.ErrorMapping{
	channel.ErrUnknownFamily: errors.NewHTTPError(http.StatusForbidden, ""),
	channel.ErrInvalidOwner:  errors.NewHTTPError(http.StatusForbidden, ""),
	channel.ErrEmptyOwner:    errors.NewHTTPError(http.StatusForbidden, ""),
}
