package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/request"
	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/service"
)

type SupplyKeyService interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, supplyKey string) error
}

type SupplyKeyHandler struct {
	svc SupplyKeyService
}

func NewSupplyKeyHandler(svc SupplyKeyService) *SupplyKeyHandler {
	return &SupplyKeyHandler{
		svc: svc,
	}
}

// HandleGetSupplyKey godoc
// @Summary      Get the token supply key
// @Tags         supply-key
// @Produce      json
// @Success      200  {object}  response.SupplyKeyResponse
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /supply-key [get]
// @Security BearerAuth
func (h *SupplyKeyHandler) HandleGetSupplyKey(ctx *gin.Context) {
	key, err := h.svc.Get(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrSupplyKeyNotFound) {
			response.RenderErr(ctx, response.ErrNotFoundCause(err))
			return
		}
		err = fmt.Errorf("v1.HandleGetSupplyKey -> h.svc.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.SupplyKeyResponse{SupplyKey: key})
}

// HandlePutSupplyKey godoc
// @Summary      Store the token supply key
// @Description  Seals the key at rest, replacing any previous one.
// @Tags         supply-key
// @Accept       json
// @Produce      json
// @Param        request  body      request.PutSupplyKeyRequest  true  "request body"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /supply-key [put]
// @Security BearerAuth
func (h *SupplyKeyHandler) HandlePutSupplyKey(ctx *gin.Context) {
	var req request.PutSupplyKeyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Set(ctx.Request.Context(), req.SupplyKey); err != nil {
		err = fmt.Errorf("v1.HandlePutSupplyKey -> h.svc.Set -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "supply key saved"})
}
