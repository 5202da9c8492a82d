package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"status_code"`
	Message        string `json:"message"`
	ErrorText      string `json:"error,omitempty"`
}

// RenderErr aborts the request with e. Server side failures are logged with
// the request id and their cause is not echoed to the client.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(e.Message,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err))
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func newErr(status int, message string, err error) *Err {
	e := &Err{
		Err:            err,
		HTTPStatusCode: status,
		Message:        message,
	}
	if err != nil {
		e.ErrorText = err.Error()
	}
	return e
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, "Bad request.", err)
}

func ErrUnauthenticated(err error) *Err {
	return newErr(http.StatusUnauthorized, "Authentication is required.", err)
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, "Permission denied.", err)
}

func ErrNotFound(resource, key string, value any) *Err {
	return newErr(http.StatusNotFound, "Resource not found.", fmt.Errorf("%s with %s %v not found", resource, key, value))
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, "Conflict with the current state.", err)
}

func ErrUnprocessable(err error) *Err {
	return newErr(http.StatusUnprocessableEntity, "Operation rejected.", err)
}

func ErrTooManyRequests() *Err {
	return newErr(http.StatusTooManyRequests, "Rate limit exceeded.", nil)
}

func ErrBadGateway(err error) *Err {
	e := newErr(http.StatusBadGateway, "Upstream ledger service failed.", err)
	e.ErrorText = ""
	return e
}

func ErrInternalServerError(err error) *Err {
	e := newErr(http.StatusInternalServerError, "Internal server error.", err)
	e.ErrorText = ""
	return e
}

// ErrNotFoundCause reports a missing resource whose error already names it.
func ErrNotFoundCause(err error) *Err {
	return newErr(http.StatusNotFound, "Resource not found.", err)
}
