package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/api/middleware"
	"github.com/omnia-labs/omnia-api/internal/service"
)

var (
	errNoAccount        = errors.New("no account bound to the session")
	errInvalidPlotIndex = errors.New("plot index must be a non-negative integer")
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         healthcheck
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "OK"})
}

func accountFromContext(ctx *gin.Context) (string, *response.Err) {
	accountID := ctx.GetString(middleware.ContextKeyAccountID)
	if accountID == "" {
		return "", response.ErrUnauthenticated(errNoAccount)
	}
	return accountID, nil
}

func plotIndexParam(ctx *gin.Context) (int, *response.Err) {
	idx, err := strconv.Atoi(ctx.Param("plotIndex"))
	if err != nil || idx < 0 {
		return 0, response.ErrBadRequest(errInvalidPlotIndex)
	}
	return idx, nil
}

// stakingErr maps a service error to its response. where names the failing
// call for the server log.
func stakingErr(where string, err error) *response.Err {
	switch {
	case errors.Is(err, service.ErrLandNotFound),
		errors.Is(err, service.ErrTokenNotFound):
		return response.ErrNotFoundCause(err)
	case errors.Is(err, service.ErrPlotOccupied),
		errors.Is(err, service.ErrLandInUse),
		errors.Is(err, service.ErrRefreshInProgress):
		return response.ErrConflict(err)
	case errors.Is(err, service.ErrNotLand),
		errors.Is(err, service.ErrInvalidPlotCount),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrIncompatibleToken),
		errors.Is(err, service.ErrNoCompatibleToken),
		errors.Is(err, service.ErrMirrorDisabled):
		return response.ErrUnprocessable(err)
	case errors.Is(err, service.ErrFetchFailed):
		return response.ErrBadGateway(fmt.Errorf("%s -> %w", where, err))
	case errors.Is(err, service.ErrPlotOutOfRange),
		errors.Is(err, service.ErrUnknownCardType),
		errors.Is(err, service.ErrDuplicateToken),
		errors.Is(err, service.ErrMissingTokenID),
		errors.Is(err, service.ErrNegativeBalance),
		errors.Is(err, service.ErrCorruptState),
		errors.Is(err, service.ErrInvalidMetadata):
		return response.ErrBadRequest(err)
	default:
		return response.ErrInternalServerError(fmt.Errorf("%s -> %w", where, err))
	}
}
