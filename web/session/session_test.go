package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medtrack/medtrack/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{
	UserId: "u1",
	Name:   "Alice",
	Email:  "a@x.com",
	Role:   model.RolePatient,
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(sessions.Sessions(CookieName, cookie.NewStore([]byte("test-secret"))))
	engine.GET("/set", func(c *gin.Context) {
		if err := SetLoginUser(c, &testIdentity); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})
	engine.GET("/get", func(c *gin.Context) {
		identity := GetLoginUser(c)
		if identity == nil {
			c.String(http.StatusOK, "absent")
			return
		}
		c.String(http.StatusOK, "%s|%s|%s|%s", identity.UserId, identity.Name, identity.Email, identity.Role)
	})
	engine.GET("/clear", func(c *gin.Context) {
		_ = ClearSession(c)
		c.Status(http.StatusOK)
	})
	return engine
}

func doGet(engine *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestSessionRoundTrip(t *testing.T) {
	engine := setupRouter()

	set := doGet(engine, "/set", nil)
	require.Equal(t, http.StatusOK, set.Code)
	cookies := set.Result().Cookies()
	require.NotEmpty(t, cookies)

	get := doGet(engine, "/get", cookies)
	assert.Equal(t, "u1|Alice|a@x.com|patient", get.Body.String())
}

func TestSessionAbsentWithoutCookie(t *testing.T) {
	engine := setupRouter()
	get := doGet(engine, "/get", nil)
	assert.Equal(t, "absent", get.Body.String())
}

func TestSessionExpired(t *testing.T) {
	t.Setenv("SESSION_LIFETIME", "1ns")

	engine := setupRouter()
	set := doGet(engine, "/set", nil)
	cookies := set.Result().Cookies()

	get := doGet(engine, "/get", cookies)
	assert.Equal(t, "absent", get.Body.String())
}

func TestSessionTamperedCookie(t *testing.T) {
	engine := setupRouter()

	set := doGet(engine, "/set", nil)
	cookies := set.Result().Cookies()
	require.NotEmpty(t, cookies)

	for _, c := range cookies {
		if len(c.Value) > 0 {
			if c.Value[0] == 'A' {
				c.Value = "B" + c.Value[1:]
			} else {
				c.Value = "A" + c.Value[1:]
			}
		}
	}

	get := doGet(engine, "/get", cookies)
	assert.Equal(t, "absent", get.Body.String())
}

func TestClearSession(t *testing.T) {
	engine := setupRouter()

	set := doGet(engine, "/set", nil)
	cookies := set.Result().Cookies()

	cleared := doGet(engine, "/clear", cookies)
	require.Equal(t, http.StatusOK, cleared.Code)

	// Cookies after clearing carry the emptied session.
	get := doGet(engine, "/get", cleared.Result().Cookies())
	assert.Equal(t, "absent", get.Body.String())
}
