package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/request"
	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/domain"
)

type StakingService interface {
	State(ctx context.Context, accountID string) (domain.StakingState, string, error)
	Groups(ctx context.Context, accountID string) ([]domain.TokenGroup, error)
	PlaceLand(ctx context.Context, accountID, tokenID string) (string, domain.StakingState, error)
	RemoveLand(ctx context.Context, accountID, instanceID string) (domain.StakingState, error)
	Candidates(ctx context.Context, accountID, instanceID string, plotIndex int) ([]domain.Token, error)
	Stake(ctx context.Context, accountID, instanceID string, plotIndex int, tokenID string, auto bool) (domain.StakeResult, domain.StakingState, error)
	Unstake(ctx context.Context, accountID, instanceID string, plotIndex int) (string, bool, domain.StakingState, error)
	RefreshInventory(ctx context.Context, accountID string) (domain.StakingState, []string, error)
	ImportInventory(ctx context.Context, accountID string, tokens []domain.Token) (domain.StakingState, []string, error)
	RestoreState(ctx context.Context, accountID string, state domain.StakingState) (domain.StakingState, error)
	Rewards(ctx context.Context, accountID string) ([]domain.RewardEntry, error)
}

type StakingHandler struct {
	svc StakingService
}

func NewStakingHandler(svc StakingService) *StakingHandler {
	return &StakingHandler{
		svc: svc,
	}
}

// HandleGetState godoc
// @Summary      Get the staking state
// @Description  Returns the inventory and every placed land. The ETag is the state digest.
// @Tags         state
// @Produce      json
// @Param        If-None-Match  header    string  false  "digest of a previously fetched state"
// @Success      200            {object}  domain.StakingState
// @Success      304
// @Failure      401            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /state [get]
// @Security BearerAuth
func (h *StakingHandler) HandleGetState(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	state, digest, err := h.svc.State(ctx.Request.Context(), accountID)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleGetState -> h.svc.State", err))
		return
	}

	etag := `"` + digest + `"`
	ctx.Header("ETag", etag)
	if ctx.GetHeader("If-None-Match") == etag {
		ctx.Status(http.StatusNotModified)
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandlePutState godoc
// @Summary      Restore a staking state
// @Description  Replaces the whole board with a previously exported state.
// @Tags         state
// @Accept       json
// @Produce      json
// @Param        request  body      request.RestoreStateRequest  true  "request body"
// @Success      200      {object}  domain.StakingState
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /state [put]
// @Security BearerAuth
func (h *StakingHandler) HandlePutState(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RestoreStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	state, err := h.svc.RestoreState(ctx.Request.Context(), accountID, req.State())
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandlePutState -> h.svc.RestoreState", err))
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleGetGroups godoc
// @Summary      List the inventory grouped by card type
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   domain.TokenGroup
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inventory/groups [get]
// @Security BearerAuth
func (h *StakingHandler) HandleGetGroups(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	groups, err := h.svc.Groups(ctx.Request.Context(), accountID)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleGetGroups -> h.svc.Groups", err))
		return
	}

	ctx.JSON(http.StatusOK, groups)
}

// HandleRefreshInventory godoc
// @Summary      Refresh the inventory from the ledger
// @Description  Fetches the account's holdings and deducts the units already staked.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  response.InventoryResponse
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      502  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inventory/refresh [post]
// @Security BearerAuth
func (h *StakingHandler) HandleRefreshInventory(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	state, clamped, err := h.svc.RefreshInventory(ctx.Request.Context(), accountID)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleRefreshInventory -> h.svc.RefreshInventory", err))
		return
	}

	ctx.JSON(http.StatusOK, response.InventoryResponse{
		State:   state,
		Clamped: clamped,
	})
}

// HandleImportInventory godoc
// @Summary      Import inventory totals
// @Description  Replaces the inventory with client supplied totals, then deducts the units already staked.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      request.ImportInventoryRequest  true  "request body"
// @Success      200      {object}  response.InventoryResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /inventory [put]
// @Security BearerAuth
func (h *StakingHandler) HandleImportInventory(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.ImportInventoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	state, clamped, err := h.svc.ImportInventory(ctx.Request.Context(), accountID, req.Tokens)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleImportInventory -> h.svc.ImportInventory", err))
		return
	}

	ctx.JSON(http.StatusOK, response.InventoryResponse{
		State:   state,
		Clamped: clamped,
	})
}

// HandlePlaceLand godoc
// @Summary      Place a land
// @Description  Consumes one unit of a land token and creates a land instance with empty plots.
// @Tags         lands
// @Accept       json
// @Produce      json
// @Param        request  body      request.PlaceLandRequest  true  "request body"
// @Success      201      {object}  response.PlaceLandResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      422      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /lands [post]
// @Security BearerAuth
func (h *StakingHandler) HandlePlaceLand(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.PlaceLandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	instanceID, state, err := h.svc.PlaceLand(ctx.Request.Context(), accountID, req.TokenID)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandlePlaceLand -> h.svc.PlaceLand", err))
		return
	}

	ctx.JSON(http.StatusCreated, response.PlaceLandResponse{
		InstanceID: instanceID,
		State:      state,
	})
}

// HandleRemoveLand godoc
// @Summary      Remove a land
// @Description  Removes a land whose plots are all empty and returns its token to the inventory.
// @Tags         lands
// @Produce      json
// @Param        instanceID  path      string  true  "land instance ID"
// @Success      200         {object}  domain.StakingState
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /lands/{instanceID} [delete]
// @Security BearerAuth
func (h *StakingHandler) HandleRemoveLand(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	state, err := h.svc.RemoveLand(ctx.Request.Context(), accountID, ctx.Param("instanceID"))
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleRemoveLand -> h.svc.RemoveLand", err))
		return
	}

	ctx.JSON(http.StatusOK, state)
}

// HandleGetCandidates godoc
// @Summary      List tokens stakeable on a plot
// @Tags         plots
// @Produce      json
// @Param        instanceID  path      string  true  "land instance ID"
// @Param        plotIndex   path      int     true  "plot index"
// @Success      200         {array}   domain.Token
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /lands/{instanceID}/plots/{plotIndex}/candidates [get]
// @Security BearerAuth
func (h *StakingHandler) HandleGetCandidates(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	plotIndex, respErr := plotIndexParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	candidates, err := h.svc.Candidates(ctx.Request.Context(), accountID, ctx.Param("instanceID"), plotIndex)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleGetCandidates -> h.svc.Candidates", err))
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleStake godoc
// @Summary      Stake a token on a plot
// @Description  Stakes the given token, or the first compatible one when auto is set.
// @Tags         plots
// @Accept       json
// @Produce      json
// @Param        instanceID  path      string                true  "land instance ID"
// @Param        plotIndex   path      int                   true  "plot index"
// @Param        request     body      request.StakeRequest  true  "request body"
// @Success      200         {object}  response.StakeResponse
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      422         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /lands/{instanceID}/plots/{plotIndex}/stake [post]
// @Security BearerAuth
func (h *StakingHandler) HandleStake(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	plotIndex, respErr := plotIndexParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.StakeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, state, err := h.svc.Stake(ctx.Request.Context(), accountID, ctx.Param("instanceID"), plotIndex, req.TokenID, req.Auto)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleStake -> h.svc.Stake", err))
		return
	}

	ctx.JSON(http.StatusOK, response.StakeResponse{
		Result: result,
		State:  state,
	})
}

// HandleUnstake godoc
// @Summary      Unstake a plot
// @Description  Empties the plot and returns its token to the inventory. Unstaking an empty plot changes nothing.
// @Tags         plots
// @Produce      json
// @Param        instanceID  path      string  true  "land instance ID"
// @Param        plotIndex   path      int     true  "plot index"
// @Success      200         {object}  response.UnstakeResponse
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /lands/{instanceID}/plots/{plotIndex}/stake [delete]
// @Security BearerAuth
func (h *StakingHandler) HandleUnstake(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	plotIndex, respErr := plotIndexParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	tokenID, changed, state, err := h.svc.Unstake(ctx.Request.Context(), accountID, ctx.Param("instanceID"), plotIndex)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleUnstake -> h.svc.Unstake", err))
		return
	}

	ctx.JSON(http.StatusOK, response.UnstakeResponse{
		TokenID: tokenID,
		Changed: changed,
		State:   state,
	})
}

// HandleGetRewards godoc
// @Summary      List reward disbursements
// @Tags         rewards
// @Produce      json
// @Success      200  {array}   domain.RewardEntry
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /rewards [get]
// @Security BearerAuth
func (h *StakingHandler) HandleGetRewards(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	entries, err := h.svc.Rewards(ctx.Request.Context(), accountID)
	if err != nil {
		response.RenderErr(ctx, stakingErr("v1.HandleGetRewards -> h.svc.Rewards", err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
