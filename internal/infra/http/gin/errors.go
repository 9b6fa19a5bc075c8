package ginserver

import (
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"
)

// ErrorResponder renders server failures. Diagnostic detail is only included
// outside production configurations.
type ErrorResponder struct {
	Logger  *slog.Logger
	Verbose bool
}

func (r ErrorResponder) ServerError(c *gin.Context, err error, message string) {
	if r.Logger != nil {
		r.Logger.Error(message, "error", err, "path", c.FullPath(), "request_id", c.GetString("request_id"))
	}
	body := gin.H{"error": message}
	if r.Verbose && err != nil {
		body["details"] = err.Error()
	}
	c.JSON(http.StatusInternalServerError, body)
}
