package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinidesk/scheduling-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status   string           `json:"status"`
	Message  string           `json:"message,omitempty"`
	Data     interface{}      `json:"data,omitempty"`
	Conflict *errors.Interval `json:"conflict,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithCreated sends a 201 success response
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError maps an application error onto an HTTP status and sends
// the error envelope. Unknown errors become a plain 500.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, Response{
			Status:  "error",
			Message: "internal server error",
		})
		return
	}

	c.JSON(statusForCode(appErr.Code), Response{
		Status:   "error",
		Message:  appErr.Message,
		Conflict: appErr.Conflict,
	})
}

func statusForCode(code errors.ErrorCode) int {
	switch code {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrBadRequest, errors.ErrInvalidRange:
		return http.StatusBadRequest
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrSlotConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
