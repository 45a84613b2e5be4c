package response

import (
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/plume-labs/plume/pkg/logger"
)

// Response is the JSON envelope every handler returns.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// FieldError reports a validation failure on a single form field. The
// submitted value is echoed back so the client can redisplay the form.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

// ValidationFailed returns 400 with per-field errors.
func ValidationFailed(c *gin.Context, errs ...FieldError) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Data:    gin.H{"errors": errs},
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{Code: http.StatusNotFound, Message: "not found"})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: msg})
}

// InternalError logs and reports the error, returning a generic body.
func InternalError(c *gin.Context, err error) {
	logger.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
		hub.CaptureException(err)
	} else {
		sentry.CaptureException(err)
	}
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}
