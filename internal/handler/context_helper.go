package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/middleware"
	"github.com/delguerso1/CT-Supera-sub000/internal/models"
)

func sessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(middleware.ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// upstreamToken returns the upstream API token of the authenticated session,
// or the empty string on public routes.
func upstreamToken(c *gin.Context) string {
	session := sessionFromContext(c)
	if session == nil {
		return ""
	}
	return session.UpstreamToken
}
