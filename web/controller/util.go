package controller

import (
	"net"
	"net/http"
	"strings"

	"github.com/medtrack/medtrack/config"
	"github.com/medtrack/medtrack/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the client address from proxy headers or the socket.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// html renders a template with the queued flash messages and the session
// identity, if any.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["cur_ver"] = config.GetVersion()
	data["flashes"] = session.Flashes(c)
	if identity := session.GetLoginUser(c); identity != nil {
		data["user"] = identity
	}
	c.HTML(http.StatusOK, name, data)
}
