package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/request"
	"github.com/omnia-labs/omnia-api/internal/api/handler/v1/response"
	"github.com/omnia-labs/omnia-api/internal/config"
	"github.com/omnia-labs/omnia-api/internal/domain"
	"github.com/omnia-labs/omnia-api/internal/pkg/jwthelper"
)

type SessionService interface {
	Connect(ctx context.Context, accountID string) (domain.StakingState, error)
	Disconnect(ctx context.Context, accountID string) error
}

type SessionHandler struct {
	conf *config.APIConfig
	svc  SessionService
}

func NewSessionHandler(conf *config.APIConfig, svc SessionService) *SessionHandler {
	return &SessionHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleCreateSession godoc
// @Summary      Connect a wallet
// @Description  Opens a session for a ledger account and returns its staking state.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest  true  "request body"
// @Success      201      {object}  response.SessionResponse
// @Failure      400      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [post]
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	state, err := h.svc.Connect(ctx.Request.Context(), req.AccountID)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSession -> h.svc.Connect -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), req.AccountID, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateSession -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.SessionResponse{
		Token: token,
		State: state,
	})
}

// HandleDeleteSession godoc
// @Summary      Disconnect the wallet
// @Description  Waits for pending saves and drops the in-memory session.
// @Tags         sessions
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions [delete]
// @Security BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	accountID, respErr := accountFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.Disconnect(ctx.Request.Context(), accountID); err != nil {
		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.Disconnect -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
