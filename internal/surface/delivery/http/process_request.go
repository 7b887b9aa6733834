package http

import (
	"github.com/gin-gonic/gin"
)

// processUpgradeRequest authenticates the upgrade request and returns the
// token subject.
func (h *Handler) processUpgradeRequest(c *gin.Context) (string, error) {
	var req upgradeReq
	_ = c.ShouldBindQuery(&req)

	// Browsers cannot set headers on WebSocket requests, so the query wins;
	// other clients may use a bearer header.
	if req.Token == "" {
		req.Token = bearerToken(c.GetHeader("Authorization"))
	}
	if err := req.validate(); err != nil {
		return "", err
	}

	claims, err := h.jwtMgr.Verify(req.Token)
	if err != nil {
		h.l.Warnf(c.Request.Context(), "surface.http.processUpgradeRequest.Verify: %v", err)
		return "", errInvalidToken
	}
	if claims.Subject != h.sessionUserID {
		h.l.Warnf(c.Request.Context(), "surface.http.processUpgradeRequest: subject %s is not session user", claims.Subject)
		return "", errForeignSession
	}
	return claims.Subject, nil
}
