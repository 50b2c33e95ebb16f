// Package session manages the client-held login session. The whole session
// lives in a signed cookie; the server keeps no session table and rejects
// anything it did not sign itself.
package session

import (
	"encoding/gob"
	"strings"
	"time"

	"github.com/medtrack/medtrack/config"
	"github.com/medtrack/medtrack/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is also the gin-contrib session name registered in web.go.
const CookieName = "medtrack"

const (
	loginUser = "LOGIN_USER"
	deadline  = "DEADLINE"
)

// Identity is the authenticated principal bound to a request.
type Identity struct {
	UserId string
	Name   string
	Email  string
	Role   model.Role
}

func init() {
	gob.Register(Identity{})
}

// SetLoginUser binds the identity to the session with an absolute expiry of
// now plus the configured lifetime. There is no implicit renewal.
func SetLoginUser(c *gin.Context, identity *Identity) error {
	lifetime := config.GetSessionLifetime()
	s := sessions.Default(c)
	s.Set(loginUser, *identity)
	s.Set(deadline, time.Now().Add(lifetime).Unix())
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(lifetime.Seconds()),
		HttpOnly: true,
	})
	return s.Save()
}

// GetLoginUser returns the session identity, or nil when the session is
// missing, malformed or past its deadline. A cookie that fails the
// signature check never decodes, so it reads as absent.
func GetLoginUser(c *gin.Context) *Identity {
	s := sessions.Default(c)

	obj := s.Get(loginUser)
	if obj == nil {
		return nil
	}
	identity, ok := obj.(Identity)
	if !ok {
		return nil
	}

	expiry, ok := s.Get(deadline).(int64)
	if !ok || time.Now().Unix() >= expiry {
		return nil
	}
	return &identity
}

// ClearSession drops the session state and expires the cookie. Clearing an
// already empty session is a no-op.
func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)

	// Later writes in the same request (the logout flash) get a fresh
	// cookie instead of inheriting the expired one.
	s.Options(sessions.Options{Path: "/"})
	return nil
}

// AddFlash queues a one-shot message (category: success, warning, danger)
// rendered by the next page load.
func AddFlash(c *gin.Context, category, message string) {
	s := sessions.Default(c)
	s.AddFlash(category + "|" + message)
	_ = s.Save()
}

// Flash is a consumed flash message.
type Flash struct {
	Category string
	Message  string
}

// Flashes drains the queued flash messages.
func Flashes(c *gin.Context) []Flash {
	s := sessions.Default(c)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = s.Save()

	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		text, ok := item.(string)
		if !ok {
			continue
		}
		category, message := "info", text
		if i := strings.IndexByte(text, '|'); i >= 0 {
			category, message = text[:i], text[i+1:]
		}
		flashes = append(flashes, Flash{Category: category, Message: message})
	}
	return flashes
}
