package http

import (
	"errors"
	"net/http"

	pkgErrors "github.com/HaokunYang123/routine-craft-bot-sub002/pkg/errors"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

var (
	errMissingToken   = errors.New("missing token")
	errInvalidToken   = errors.New("invalid or expired token")
	errForeignSession = errors.New("token does not belong to this session")

	errTooManyAttaches = pkgErrors.NewHTTPError(http.StatusTooManyRequests, "Too many connection attempts")
)

var errMap = response.ErrorMapping{
	errMissingToken:   pkgErrors.NewHTTPError(http.StatusUnauthorized, "Missing authentication token"),
	errInvalidToken:   pkgErrors.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token"),
	errForeignSession: pkgErrors.NewHTTPError(http.StatusForbidden, ""),
}
