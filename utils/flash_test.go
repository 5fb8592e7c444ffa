package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirp/chirp/config"
)

func newTestContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	ctx.Request = req
	return ctx, w
}

func flashCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == FlashCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie set", FlashCookieName)
	return nil
}

func TestFinish_QueuesMessageAndRedirects(t *testing.T) {
	ctx, w := newTestContext()
	Finish(ctx, Succeeded("Your post has been published!", "/"))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	c := flashCookie(t, w)
	assert.Equal(t, []Flash{{Severity: SeveritySuccess, Message: "Your post has been published!"}}, decodeFlashes(c.Value))
	assert.True(t, c.HttpOnly)
}

func TestFlashCookie_FollowsCookieSecure(t *testing.T) {
	prev := config.Get()
	t.Cleanup(func() { config.Set(prev) })

	ctx, w := newTestContext()
	AddFlash(ctx, SeveritySuccess, "plain")
	assert.False(t, flashCookie(t, w).Secure)

	secure := prev
	secure.CookieSecure = true
	config.Set(secure)

	// no TLS on the request itself, as behind a terminating proxy
	ctx2, w2 := newTestContext()
	AddFlash(ctx2, SeveritySuccess, "proxied")
	assert.True(t, flashCookie(t, w2).Secure)

	ctx3, w3 := newTestContext(flashCookie(t, w2))
	require.Len(t, PopFlashes(ctx3), 1)
	assert.True(t, flashCookie(t, w3).Secure)
}

func TestFinish_EmptyTargetGoesHome(t *testing.T) {
	ctx, w := newTestContext()
	Finish(ctx, Outcome{})
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestFlashes_AccumulateAcrossRequests(t *testing.T) {
	ctx, w := newTestContext()
	AddFlash(ctx, SeveritySuccess, "You have been successfully registered")
	first := flashCookie(t, w)

	ctx2, w2 := newTestContext(first)
	Finish(ctx2, Warned("Please log in to view the feed", "/login"))
	second := flashCookie(t, w2)

	ctx3, _ := newTestContext(second)
	got := PopFlashes(ctx3)
	assert.Equal(t, []Flash{
		{Severity: SeveritySuccess, Message: "You have been successfully registered"},
		{Severity: SeverityWarning, Message: "Please log in to view the feed"},
	}, got)
}

func TestPopFlashes_ClearsCookie(t *testing.T) {
	ctx, w := newTestContext()
	AddFlash(ctx, SeverityDanger, "oops")

	ctx2, w2 := newTestContext(flashCookie(t, w))
	require.Len(t, PopFlashes(ctx2), 1)
	assert.Empty(t, PopFlashes(ctx2))

	c := flashCookie(t, w2)
	assert.Empty(t, c.Value)
	assert.True(t, c.MaxAge < 0)
}

func TestPopFlashes_NoneLeavesCookiesAlone(t *testing.T) {
	ctx, w := newTestContext()
	assert.Empty(t, PopFlashes(ctx))
	assert.Empty(t, w.Result().Cookies())
}

func TestDecodeFlashes_Garbage(t *testing.T) {
	assert.Empty(t, decodeFlashes("%%%"))
	assert.Empty(t, decodeFlashes(encodeFlashes(nil)))
	assert.Equal(t,
		[]Flash{{Severity: SeverityWarning, Message: "ok"}},
		decodeFlashes(encodeFlashes([]Flash{{Severity: "bogus", Message: "x"}, {Severity: SeverityWarning, Message: "ok"}})),
	)
}
