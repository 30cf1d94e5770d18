package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	appdb "github.com/sociallyapp/socially-be/db"
)

type HTTPError struct {
	Status  int
	Message string
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

var (
	DbHTTPErr = HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
	}
)

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: err.Error(),
	}
}

// BuildDbHTTPErr maps store error kinds onto HTTP statuses. Anything
// unrecognized is reported as a generic database error; details stay in the
// logs, not the response.
func BuildDbHTTPErr(err error) *HTTPError {
	switch {
	case errors.Is(err, appdb.ErrNotFound):
		return &HTTPError{Status: http.StatusNotFound, Message: err.Error()}
	case errors.Is(err, appdb.ErrForbidden):
		return &HTTPError{Status: http.StatusForbidden, Message: err.Error()}
	case errors.Is(err, appdb.ErrConflict):
		return &HTTPError{Status: http.StatusConflict, Message: err.Error()}
	case errors.Is(err, appdb.ErrInvalid):
		return &HTTPError{Status: http.StatusBadRequest, Message: err.Error()}
	}
	return &DbHTTPErr
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

type HandlerOpts struct {
}

// HandlerWrapper adapts a value-or-error handler to gin, standardizing the
// response envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			c.JSON(httpErr.Status, gin.H{
				"success": false,
				"message": httpErr.Message,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}
