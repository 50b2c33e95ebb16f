package controller

import (
	"github.com/medtrack/medtrack/database/model"
	"github.com/medtrack/medtrack/web/middleware"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the role-specific views behind the auth gate.
type DashboardController struct {
	BaseController
}

func NewDashboardController(g *gin.RouterGroup) *DashboardController {
	a := &DashboardController{}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g.GET("/patient_dashboard", middleware.RequireRole(model.RolePatient), a.patientDashboard)
	g.GET("/doctor_dashboard", middleware.RequireRole(model.RoleDoctor), a.doctorDashboard)
}

func (a *DashboardController) patientDashboard(c *gin.Context) {
	html(c, "patient_dashboard.html", "Patient dashboard", nil)
}

func (a *DashboardController) doctorDashboard(c *gin.Context) {
	html(c, "doctor_dashboard.html", "Doctor dashboard", nil)
}
