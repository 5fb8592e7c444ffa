package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID             uint
	Content        string
	Timestamp      time.Time
	AuthorID       uint
	AuthorNickname string
	LikeCount      int64
	Liked          bool
}

type flash struct{ Severity, Message string }

func render(t *testing.T, name string, data map[string]interface{}) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestTemplates_AllPagesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)
	for _, name := range []string{"index.html", "login.html", "register.html", "user.html", "error.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestIndex_EscapesContentAndShowsLikes(t *testing.T) {
	out := render(t, "index.html", map[string]interface{}{
		"viewer":     uint(1),
		"max_length": 140,
		"flashes":    []flash{{"success", "Your post has been published!"}},
		"items": []item{
			{ID: 3, Content: "<b>hi</b>", AuthorID: 2, AuthorNickname: "bob", LikeCount: 1, Liked: true},
			{ID: 2, Content: "plain", AuthorID: 1, AuthorNickname: "alice"},
		},
	})
	assert.Contains(t, out, "&lt;b&gt;hi&lt;/b&gt;")
	assert.Contains(t, out, `class="alert alert-success"`)
	assert.Contains(t, out, "Your post has been published!")
	assert.Contains(t, out, "1 like\n")
	assert.Contains(t, out, "0 likes")
	assert.Contains(t, out, "Unlike")
	assert.Contains(t, out, `action="/like/2"`)
	assert.Contains(t, out, `maxlength="140"`)
}

func TestIndex_EmptyPage(t *testing.T) {
	out := render(t, "index.html", map[string]interface{}{"viewer": uint(1)})
	assert.Contains(t, out, "No posts here yet.")
}

func TestUser_ShowsProfileFields(t *testing.T) {
	out := render(t, "user.html", map[string]interface{}{
		"user": struct {
			Nickname, Email string
			BirthDate       time.Time
		}{"alice", "alice@example.com", time.Date(1990, 5, 6, 0, 0, 0, 0, time.UTC)},
		"next": "/user/1",
	})
	assert.Contains(t, out, "alice@example.com")
	assert.Contains(t, out, "1990-05-06")
	assert.Contains(t, out, "Log in")
}

func TestError(t *testing.T) {
	out := render(t, "error.html", map[string]interface{}{"status": 404, "message": "User not found"})
	assert.Contains(t, out, "<h1>404</h1>")
	assert.Contains(t, out, "User not found")
}
