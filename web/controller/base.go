// Package controller provides the HTTP request handlers of the MedTrack
// panel: the public landing, signup and login pages and the role-gated
// dashboards.
package controller

import (
	"net/http"

	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController carries the helpers shared by all controllers.
type BaseController struct{}

// redirectDashboard sends an already authenticated client straight to its
// role's dashboard.
func (a *BaseController) redirectDashboard(c *gin.Context, role model.Role) {
	c.Redirect(http.StatusFound, "/"+string(role)+"_dashboard")
}

// parseRole validates the :role path parameter. On an unknown role it
// flashes and redirects to the landing page, matching the public pages'
// human-facing response mode.
func (a *BaseController) parseRole(c *gin.Context) (model.Role, bool) {
	role, ok := model.ParseRole(c.Param("role"))
	if !ok {
		session.AddFlash(c, "danger", "Invalid role.")
		c.Redirect(http.StatusFound, "/")
		return "", false
	}
	return role, true
}
