package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/user-management-backend/internal/pkg/apperror"
	"github.com/marcos-nsantos/user-management-backend/internal/pkg/validation"
)

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key holding the current request id.
	RequestIDKey = "request_id"
)

// Envelope is the body shape of every response the API sends.
type Envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Data    any                    `json:"data,omitempty"`
	Errors  validation.FieldErrors `json:"errors,omitempty"`
}

// Response pairs an envelope with the status code it is sent under.
type Response struct {
	StatusCode int
	Body       Envelope
}

func Success(message string, data any) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body: Envelope{
			Success: true,
			Message: message,
			Data:    data,
		},
	}
}

func Failure(message string, errs validation.FieldErrors) Response {
	if errs.Empty() {
		errs = nil
	}
	return Response{
		StatusCode: http.StatusBadRequest,
		Body: Envelope{
			Success: false,
			Message: message,
			Errors:  errs,
		},
	}
}

func ValidationFailure(errs validation.FieldErrors) Response {
	return Failure("Validation failed", errs).WithStatus(http.StatusUnprocessableEntity)
}

func (r Response) WithStatus(code int) Response {
	r.StatusCode = code
	return r
}

func Write(c *gin.Context, r Response) {
	c.JSON(r.StatusCode, r.Body)
}

func OK(c *gin.Context, message string, data any) {
	Write(c, Success(message, data))
}

func Created(c *gin.Context, message string, data any) {
	Write(c, Success(message, data).WithStatus(http.StatusCreated))
}

func Error(c *gin.Context, status int, message string) {
	Write(c, Failure(message, nil).WithStatus(status))
}

func ValidationError(c *gin.Context, errs validation.FieldErrors) {
	Write(c, ValidationFailure(errs))
}

func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

// HandleError answers with the status and message of an AppError. Anything
// else is treated as an internal fault and its details stay server-side.
func HandleError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode >= http.StatusInternalServerError {
			_ = c.Error(err)
		}
		Write(c, Failure(appErr.Message, appErr.Fields).WithStatus(appErr.StatusCode))
		return
	}
	_ = c.Error(err)
	InternalError(c)
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
