package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delguerso1/CT-Supera-sub000/internal/models"
	appErrors "github.com/delguerso1/CT-Supera-sub000/pkg/errors"
	"github.com/delguerso1/CT-Supera-sub000/pkg/response"
)

// RequireTipo restricts a route to the given account types. The special
// value "SELF" additionally allows a user to operate on their own record
// when the route carries an :id parameter.
func RequireTipo(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextSessionKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		session := value.(*models.Session)

		allowSelf := false
		allowedTipos := make(map[models.UserTipo]struct{})
		for _, a := range allowed {
			if a == "SELF" {
				allowSelf = true
				continue
			}
			allowedTipos[models.UserTipo(a)] = struct{}{}
		}

		if _, ok := allowedTipos[session.Tipo]; ok {
			c.Next()
			return
		}

		if allowSelf {
			if targetID := c.Param("id"); targetID != "" && targetID == strconv.Itoa(session.UserID) {
				c.Next()
				return
			}
		}

		response.Error(c, appErrors.ErrForbidden)
		c.Abort()
	}
}

// Gerente restricts a route to managers.
func Gerente() gin.HandlerFunc {
	return RequireTipo(string(models.TipoGerente))
}

// Staff restricts a route to managers and professors.
func Staff() gin.HandlerFunc {
	return RequireTipo(string(models.TipoGerente), string(models.TipoProfessor))
}
