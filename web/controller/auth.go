package controller

import (
	"errors"
	"net/http"

	"github.com/medtrack/medtrack/database"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/web/service"
	"github.com/medtrack/medtrack/web/session"

	"github.com/gin-gonic/gin"
)

// SignupForm is the registration request body.
type SignupForm struct {
	Name     string `json:"name" form:"name"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginForm is the authentication request body.
type LoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// AuthController handles signup and login for both roles.
type AuthController struct {
	BaseController

	userService   *service.UserService
	notifyService *service.NotifyService
}

func NewAuthController(g *gin.RouterGroup, userService *service.UserService, notifyService *service.NotifyService) *AuthController {
	a := &AuthController{
		userService:   userService,
		notifyService: notifyService,
	}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.GET("/signup/:role", a.signupPage)
	g.POST("/signup/:role", a.signup)
	g.GET("/login/:role", a.loginPage)
	g.POST("/login/:role", a.login)
}

func (a *AuthController) signupPage(c *gin.Context) {
	role, ok := a.parseRole(c)
	if !ok {
		return
	}
	if identity := session.GetLoginUser(c); identity != nil {
		a.redirectDashboard(c, identity.Role)
		return
	}
	html(c, "signup.html", "Sign up", gin.H{"role": role})
}

// signup creates an account. Nothing is written unless all three fields
// are present and the email is unused; the failure modes re-render the
// form so the client can correct and retry.
func (a *AuthController) signup(c *gin.Context) {
	role, ok := a.parseRole(c)
	if !ok {
		return
	}

	var form SignupForm
	if err := c.ShouldBind(&form); err != nil || form.Name == "" || form.Email == "" || form.Password == "" {
		session.AddFlash(c, "warning", "All fields required.")
		html(c, "signup.html", "Sign up", gin.H{"role": role})
		return
	}

	user, err := a.userService.Register(c.Request.Context(), form.Name, form.Email, form.Password, role)
	if err != nil {
		if errors.Is(err, database.ErrUserExists) {
			session.AddFlash(c, "danger", "User exists.")
		} else {
			logger.Errorf("signup failed for role %s: %v", role, err)
			session.AddFlash(c, "danger", "Something went wrong. Please try again later.")
		}
		html(c, "signup.html", "Sign up", gin.H{"role": role})
		return
	}

	a.notifyService.NotifySignup(c.Request.Context(), user)

	session.AddFlash(c, "success", "Signup successful. Please log in.")
	c.Redirect(http.StatusFound, "/login/"+string(role))
}

func (a *AuthController) loginPage(c *gin.Context) {
	role, ok := a.parseRole(c)
	if !ok {
		return
	}
	if identity := session.GetLoginUser(c); identity != nil {
		a.redirectDashboard(c, identity.Role)
		return
	}
	html(c, "login.html", "Log in", gin.H{"role": role})
}

// login authenticates and starts the session. An unknown email and a wrong
// password produce the same message so the form cannot be used to
// enumerate accounts.
func (a *AuthController) login(c *gin.Context) {
	role, ok := a.parseRole(c)
	if !ok {
		return
	}

	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		session.AddFlash(c, "danger", "Invalid credentials.")
		html(c, "login.html", "Log in", gin.H{"role": role})
		return
	}

	user, err := a.userService.Authenticate(c.Request.Context(), form.Email, form.Password, role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			logger.Warningf("failed %s login attempt, IP %s", role, getRemoteIp(c))
			session.AddFlash(c, "danger", "Invalid credentials.")
		case errors.Is(err, service.ErrRoleMismatch):
			session.AddFlash(c, "danger", "Role mismatch.")
		default:
			logger.Errorf("login failed for role %s: %v", role, err)
			session.AddFlash(c, "danger", "Something went wrong. Please try again later.")
		}
		html(c, "login.html", "Log in", gin.H{"role": role})
		return
	}

	identity := &session.Identity{
		UserId: user.UserId,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
	}
	if err := session.SetLoginUser(c, identity); err != nil {
		logger.Error("failed to save session:", err)
		session.AddFlash(c, "danger", "Something went wrong. Please try again later.")
		html(c, "login.html", "Log in", gin.H{"role": role})
		return
	}

	logger.Infof("%s logged in, IP %s", user.UserId, getRemoteIp(c))
	a.notifyService.NotifyLogin(c.Request.Context(), user)

	session.AddFlash(c, "success", "Login successful.")
	a.redirectDashboard(c, user.Role)
}
