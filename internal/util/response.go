package util

import (
	"net/http"

	"masomo_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint replies with. Code mirrors the
// HTTP status so clients reading only the body still see the outcome.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse wraps list endpoints with their paging window.
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{Code: status, Message: message, Data: data})
}

func Success(c *gin.Context, data interface{}) {
	respond(c, http.StatusOK, "success", data)
}

func Created(c *gin.Context, data interface{}) {
	respond(c, http.StatusCreated, "created", data)
}

func Error(c *gin.Context, code int, message string) {
	respond(c, code, message, nil)
}

func BadRequest(c *gin.Context, message string) { Error(c, http.StatusBadRequest, message) }
func Conflict(c *gin.Context, message string)   { Error(c, http.StatusConflict, message) }

func Unauthorized(c *gin.Context) { Error(c, http.StatusUnauthorized, "Unauthorized") }
func Forbidden(c *gin.Context)    { Error(c, http.StatusForbidden, "Forbidden") }
func NotFound(c *gin.Context)     { Error(c, http.StatusNotFound, "Resource not found") }

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// LogInternalError hides the cause from the client but keeps it in the log,
// tagged with the route that produced it.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}
