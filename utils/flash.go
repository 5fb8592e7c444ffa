package utils

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chirp/chirp/config"
)

// Severity tags a flash message; the values double as CSS classes in the templates.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
)

// FlashCookieName carries pending flash messages across a redirect.
const FlashCookieName = "flash"

const flashContextKey = "flashes"

// Flash is a one-time notice shown on the next rendered page.
type Flash struct {
	Severity Severity `json:"s"`
	Message  string   `json:"m"`
}

// Outcome is what a form handler decided: a notice and where to send the browser next.
type Outcome struct {
	Severity Severity
	Message  string
	Target   string
}

// Succeeded builds a success Outcome.
func Succeeded(message, target string) Outcome {
	return Outcome{Severity: SeveritySuccess, Message: message, Target: target}
}

// Failed builds a danger Outcome.
func Failed(message, target string) Outcome {
	return Outcome{Severity: SeverityDanger, Message: message, Target: target}
}

// Warned builds a warning Outcome.
func Warned(message, target string) Outcome {
	return Outcome{Severity: SeverityWarning, Message: message, Target: target}
}

// Finish queues the outcome's message and redirects to its target.
func Finish(ctx *gin.Context, out Outcome) {
	if out.Message != "" {
		AddFlash(ctx, out.Severity, out.Message)
	}
	target := out.Target
	if target == "" {
		target = "/"
	}
	ctx.Redirect(http.StatusFound, target)
}

// AddFlash appends a message to the pending queue and persists the queue in the flash cookie.
func AddFlash(ctx *gin.Context, severity Severity, message string) {
	pending := append(pendingFlashes(ctx), Flash{Severity: severity, Message: message})
	ctx.Set(flashContextKey, pending)
	writeFlashCookie(ctx, pending)
}

// PopFlashes returns and clears the pending messages.
func PopFlashes(ctx *gin.Context) []Flash {
	pending := pendingFlashes(ctx)
	ctx.Set(flashContextKey, []Flash{})
	if len(pending) > 0 {
		writeFlashCookie(ctx, nil)
	}
	return pending
}

func pendingFlashes(ctx *gin.Context) []Flash {
	if v, ok := ctx.Get(flashContextKey); ok {
		if list, ok := v.([]Flash); ok {
			return list
		}
	}
	raw, err := ctx.Cookie(FlashCookieName)
	if err != nil || raw == "" {
		return nil
	}
	return decodeFlashes(raw)
}

func writeFlashCookie(ctx *gin.Context, list []Flash) {
	secure := config.Get().CookieSecure
	if len(list) == 0 {
		ctx.SetCookie(FlashCookieName, "", -1, "/", "", secure, true)
		return
	}
	ctx.SetCookie(FlashCookieName, encodeFlashes(list), 0, "/", "", secure, true)
}

func encodeFlashes(list []Flash) string {
	b, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// decodeFlashes drops anything malformed; a bad cookie must never break a page.
func decodeFlashes(raw string) []Flash {
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var list []Flash
	if err := json.Unmarshal(b, &list); err != nil {
		return nil
	}
	out := list[:0]
	for _, f := range list {
		switch f.Severity {
		case SeveritySuccess, SeverityDanger, SeverityWarning:
			out = append(out, f)
		}
	}
	return out
}
