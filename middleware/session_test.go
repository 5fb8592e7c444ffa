package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirp/chirp/config"
	"github.com/chirp/chirp/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Set(config.AppConfig{SessionSecret: "middleware-test-secret"})
	os.Exit(m.Run())
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(LoadSession())
	r.GET("/whoami", func(ctx *gin.Context) {
		id, ok := ctx.Get(ContextUserIDKey)
		if !ok {
			ctx.String(http.StatusOK, "anonymous")
			return
		}
		ctx.JSON(http.StatusOK, id)
	})
	r.GET("/private", LoginRequired("Please log in to view the feed"), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "secret")
	})
	r.GET("/api", APIAuthRequired(), func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "data")
	})
	r.POST("/login/:id", func(ctx *gin.Context) {
		if err := StartSession(ctx, 7); err != nil {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.Status(http.StatusNoContent)
	})
	r.POST("/logout", func(ctx *gin.Context) {
		_ = EndSession(ctx)
		ctx.Status(http.StatusNoContent)
	})
	return r
}

func do(r http.Handler, method, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sessionCookie(t *testing.T, userID uint) *http.Cookie {
	t.Helper()
	token, _, err := utils.GenerateSessionToken(userID, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func TestLoadSession_Anonymous(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/whoami")
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoadSession_ValidCookie(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/whoami", sessionCookie(t, 42))
	assert.Equal(t, "42", w.Body.String())
}

func TestLoadSession_BadCookieIsClearedAndIgnored(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/whoami", &http.Cookie{Name: SessionCookieName, Value: "garbage"})
	assert.Equal(t, "anonymous", w.Body.String())

	c := cookieNamed(w, SessionCookieName)
	require.NotNil(t, c)
	assert.True(t, c.MaxAge < 0)
}

func TestLoadSession_ExpiredCookie(t *testing.T) {
	token, _, err := utils.GenerateSessionToken(42, -time.Minute)
	require.NoError(t, err)
	w := do(newEngine(), http.MethodGet, "/whoami", &http.Cookie{Name: SessionCookieName, Value: token})
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestLoginRequired_RedirectsWithWarning(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/private")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
	assert.NotContains(t, w.Body.String(), "secret")

	flash := cookieNamed(w, utils.FlashCookieName)
	require.NotNil(t, flash)

	// the flash survives into the next request
	r := gin.New()
	var got []utils.Flash
	r.GET("/login", func(ctx *gin.Context) { got = utils.PopFlashes(ctx) })
	do(r, http.MethodGet, "/login", flash)
	assert.Equal(t, []utils.Flash{{Severity: utils.SeverityWarning, Message: "Please log in to view the feed"}}, got)
}

func TestLoginRequired_PassesAuthenticated(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/private", sessionCookie(t, 1))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", w.Body.String())
}

func TestAPIAuthRequired(t *testing.T) {
	w := do(newEngine(), http.MethodGet, "/api")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"code":40101,"message":"login required"}`, w.Body.String())

	w = do(newEngine(), http.MethodGet, "/api", sessionCookie(t, 1))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStartSession_SetsHttpOnlyCookie(t *testing.T) {
	w := do(newEngine(), http.MethodPost, "/login/7")
	c := cookieNamed(w, SessionCookieName)
	require.NotNil(t, c)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	claims, err := utils.ParseSessionToken(c.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestEndSession_RevokesToken(t *testing.T) {
	r := newEngine()
	session := sessionCookie(t, 9)

	assert.Equal(t, "9", do(r, http.MethodGet, "/whoami", session).Body.String())

	w := do(r, http.MethodPost, "/logout", session)
	c := cookieNamed(w, SessionCookieName)
	require.NotNil(t, c)
	assert.True(t, c.MaxAge < 0)

	// replaying the old cookie no longer authenticates
	assert.Equal(t, "anonymous", do(r, http.MethodGet, "/whoami", session).Body.String())
}
