// Package web provides the MedTrack panel's web server: routing, embedded
// HTML templates, session handling and background job scheduling.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/medtrack/medtrack/config"
	"github.com/medtrack/medtrack/database"
	"github.com/medtrack/medtrack/logger"
	"github.com/medtrack/medtrack/util/common"
	"github.com/medtrack/medtrack/util/random"
	"github.com/medtrack/medtrack/web/controller"
	"github.com/medtrack/medtrack/web/job"
	"github.com/medtrack/medtrack/web/service"
	websession "github.com/medtrack/medtrack/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the MedTrack web server with its controllers, services and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index     *controller.IndexController
	auth      *controller.AuthController
	dashboard *controller.DashboardController

	store         database.UserStore
	userService   *service.UserService
	notifyService *service.NotifyService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer wires the server around an already selected user store.
func NewServer(store database.UserStore) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		store:         store,
		userService:   service.NewUserService(store),
		notifyService: service.NewNotifyService(ctx),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// sessionSecret returns the configured signing secret, or a random
// per-process one. The random fallback invalidates every outstanding
// session on restart, so production deployments should set SECRET_KEY.
func sessionSecret() []byte {
	if secret := config.GetSessionSecret(); secret != "" {
		return []byte(secret)
	}
	logger.Warning("SECRET_KEY not set, using a random session secret; sessions will not survive a restart")
	return []byte(random.Seq(32))
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes gin, registers middleware, templates and
// controllers and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(sessions.Sessions(websession.CookieName, cookie.NewStore(sessionSecret())))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.auth = controller.NewAuthController(g, s.userService, s.notifyService)
	s.dashboard = controller.NewDashboardController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@every 1m", job.NewStorePingJob(s.store))
	s.cron.AddJob("@hourly", job.NewNotifyStatsJob(s.notifyService))
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }
