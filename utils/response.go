package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, 0, "success", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// RenderPage renders an HTML template and hands it the pending flash messages
// followed by extra, which is shown on this page only.
func RenderPage(ctx *gin.Context, status int, name string, data gin.H, extra ...Flash) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = append(PopFlashes(ctx), extra...)
	ctx.HTML(status, name, data)
}

// RenderError renders the generic error page.
func RenderError(ctx *gin.Context, status int, message string) {
	RenderPage(ctx, status, "error.html", gin.H{
		"status":  status,
		"message": message,
	})
	ctx.Abort()
}

// ServerError logs err with the request path and renders a 500 page without details.
func ServerError(ctx *gin.Context, err error, what string) {
	Sugar.Errorw(what, "path", ctx.Request.URL.Path, "method", ctx.Request.Method, "error", err)
	RenderError(ctx, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}

// NotFound renders the 404 page.
func NotFound(ctx *gin.Context, message string) {
	RenderError(ctx, http.StatusNotFound, message)
}
