package controller

import (
	"net/http"

	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/web/middleware"
	"github.com/medtrack/medtrack/web/session"

	"github.com/gin-gonic/gin"
)

// IndexController handles the landing page and logout.
type IndexController struct {
	BaseController
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", middleware.RequireLogin(), a.logout)
}

// index renders the public entry page. No auth.
func (a *IndexController) index(c *gin.Context) {
	html(c, "index.html", "MedTrack", nil)
}

// logout ends the session and returns to the landing page. Clearing twice
// in a row is harmless; the gate already answered for the no-session case.
func (a *IndexController) logout(c *gin.Context) {
	if identity := session.GetLoginUser(c); identity != nil {
		logger.Infof("%s logged out, IP %s", identity.UserId, getRemoteIp(c))
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("failed to clear session:", err)
	}
	session.AddFlash(c, "success", "Logged out successfully.")
	c.Redirect(http.StatusFound, "/")
}
