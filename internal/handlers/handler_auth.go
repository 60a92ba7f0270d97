package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler issues session tokens binding a bearer to a ledger address.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		tokenService: ts,
	}
}

// registerAuthRoutes registers the public session route.
func registerAuthRoutes(r *gin.Engine, tokenService portssvc.TokenSvcFacade) {
	h := newAuthHandler(tokenService)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/session", h.createSession)
	}
}

// createSession godoc
// @Summary Create a session token
// @Description Issues a bearer token whose subject is the given ledger address. Proof of address control belongs to the wallet layer in front of this service.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   session body dto.SessionRequest true "Ledger address"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid address"
// @Failure 500 {object} map[string]string "Failed to issue token"
// @Router /auth/session [post]
func (h *authHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, err := h.tokenService.IssueSessionToken(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to issue session token", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Token: token, ExpiresAt: expiresAt})
}
