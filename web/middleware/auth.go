// Package middleware holds the request-interception policies of the web
// layer, chiefly the auth gate applied to protected routes.
package middleware

import (
	"net/http"

	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/web/entity"
	"github.com/medtrack/medtrack/web/session"

	"github.com/gin-gonic/gin"
)

// Decision is the auth gate outcome for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthenticated
	DecisionForbidden
)

// Decide is the whole access policy: no session means unauthenticated, a
// role mismatch means forbidden, anything else is allowed. requiredRole ""
// means any authenticated user.
func Decide(identity *session.Identity, requiredRole model.Role) Decision {
	if identity == nil {
		return DecisionUnauthenticated
	}
	if requiredRole != "" && identity.Role != requiredRole {
		return DecisionForbidden
	}
	return DecisionAllow
}

// RequireLogin gates a route on any authenticated session.
func RequireLogin() gin.HandlerFunc {
	return requireRole("")
}

// RequireRole gates a route on a session carrying exactly the given role.
func RequireRole(role model.Role) gin.HandlerFunc {
	return requireRole(role)
}

func requireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Decide(session.GetLoginUser(c), role) {
		case DecisionUnauthenticated:
			if isAjax(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{Msg: "Authentication required"})
				return
			}
			session.AddFlash(c, "warning", "Please log in.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		case DecisionForbidden:
			if isAjax(c) {
				c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{Msg: "Access denied"})
				return
			}
			session.AddFlash(c, "danger", "Access denied.")
			c.Redirect(http.StatusFound, "/")
			c.Abort()
		default:
			c.Next()
		}
	}
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
