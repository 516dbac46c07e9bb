package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// StatusError is implemented by errors that know their HTTP status and the
// message safe to show a client.
type StatusError interface {
	error
	StatusCode() int
	PublicMessage() string
}

func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, APIResponse{
		Success: false,
		Message: message,
	})
}

func ValidationErrorResponse(c *gin.Context, errs map[string]string) {
	c.JSON(http.StatusBadRequest, APIResponse{
		Success: false,
		Message: ErrValidationFailed,
		Errors:  errs,
	})
}

func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message)
}

func InternalServerErrorResponse(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, ErrInternalServer)
}

// HandleServiceError writes the response for err. Errors without a known
// status become a 500 with a generic message; the cause is attached to the
// gin context so the request logger records it.
func HandleServiceError(c *gin.Context, err error) {
	_ = c.Error(err)

	var se StatusError
	if errors.As(err, &se) {
		ErrorResponse(c, se.StatusCode(), se.PublicMessage())
		return
	}
	InternalServerErrorResponse(c)
}
