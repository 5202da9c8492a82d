package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/request"
	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/service"
)

type NFTRecordService interface {
	Create(ctx context.Context, record domain.NFTRecord) (domain.NFTRecord, error)
	List(ctx context.Context) ([]domain.NFTRecord, error)
	Delete(ctx context.Context, id string) error
}

type NFTRecordHandler struct {
	svc NFTRecordService
}

func NewNFTRecordHandler(svc NFTRecordService) *NFTRecordHandler {
	return &NFTRecordHandler{
		svc: svc,
	}
}

// HandleCreateNFTRecord godoc
// @Summary      Record a minted token
// @Description  Stores a token created through the creation tool. Metadata, when present, must match its card type.
// @Tags         nft-records
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateNFTRecordRequest  true  "request body"
// @Success      201      {object}  domain.NFTRecord
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /nft-records [post]
// @Security BearerAuth
func (h *NFTRecordHandler) HandleCreateNFTRecord(ctx *gin.Context) {
	var req request.CreateNFTRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	record, err := h.svc.Create(ctx.Request.Context(), req.Record())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMetadata):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNFTRecordExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateNFTRecord -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, record)
}

// HandleListNFTRecords godoc
// @Summary      List recorded tokens
// @Tags         nft-records
// @Produce      json
// @Success      200  {array}   domain.NFTRecord
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /nft-records [get]
// @Security BearerAuth
func (h *NFTRecordHandler) HandleListNFTRecords(ctx *gin.Context) {
	records, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListNFTRecords -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleDeleteNFTRecord godoc
// @Summary      Delete a recorded token
// @Tags         nft-records
// @Param        recordID  path      string  true  "record ID"
// @Success      204
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /nft-records/{recordID} [delete]
// @Security BearerAuth
func (h *NFTRecordHandler) HandleDeleteNFTRecord(ctx *gin.Context) {
	recordID := ctx.Param("recordID")
	if err := h.svc.Delete(ctx.Request.Context(), recordID); err != nil {
		if errors.Is(err, service.ErrNFTRecordNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("nft record", "id", recordID))
			return
		}
		err = fmt.Errorf("v1.HandleDeleteNFTRecord -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
