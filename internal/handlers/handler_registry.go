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

// registryHandler handles HTTP requests for ownership, bans and the
// aggregate ledger status.
type registryHandler struct {
	registryService   portssvc.RegistrySvcFacade
	campaignService   portssvc.CampaignSvcFacade
	settlementService portssvc.SettlementSvcFacade
}

// newRegistryHandler creates a new registryHandler.
func newRegistryHandler(rs portssvc.RegistrySvcFacade, cs portssvc.CampaignSvcFacade, ss portssvc.SettlementSvcFacade) *registryHandler {
	return &registryHandler{
		registryService:   rs,
		campaignService:   cs,
		settlementService: ss,
	}
}

// registerRegistryReadRoutes registers the public status query.
func registerRegistryReadRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade, campaignService portssvc.CampaignSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newRegistryHandler(registryService, campaignService, settlementService)
	rg.GET("/ledger/status", h.getLedgerStatus)
}

// registerRegistryCommandRoutes registers the authenticated admin routes.
func registerRegistryCommandRoutes(rg *gin.RouterGroup, registryService portssvc.RegistrySvcFacade, campaignService portssvc.CampaignSvcFacade, settlementService portssvc.SettlementSvcFacade) {
	h := newRegistryHandler(registryService, campaignService, settlementService)

	rg.POST("/ledger/owner", h.changeOwner)
	rg.POST("/ledger/bans", h.banEntrepreneur)
}

// getLedgerStatus godoc
// @Summary Get the aggregate ledger status
// @Description Returns ownership, activation state, campaign count and the undrawn fee balance in one response
// @Tags registry
// @Produce  json
// @Success 200 {object} dto.LedgerStatusResponse
// @Failure 500 {object} map[string]string "Failed to retrieve ledger status"
// @Router /ledger/status [get]
func (h *registryHandler) getLedgerStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ctx := c.Request.Context()

	var resp dto.LedgerStatusResponse
	var err error

	if resp.Owner, err = h.registryService.Owner(ctx); err == nil {
		if resp.SecondaryAdmin, err = h.registryService.SecondaryAdmin(ctx); err == nil {
			if resp.ContractActive, err = h.registryService.IsContractActive(ctx); err == nil {
				if _, resp.CampaignCount, err = h.campaignService.ListCampaigns(ctx, 1, 0); err == nil {
					resp.TotalFeesCollected, err = h.settlementService.TotalFeesCollected(ctx)
				}
			}
		}
	}
	if err != nil {
		logger.Error("Failed to assemble ledger status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve ledger status"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// changeOwner godoc
// @Summary Replace the primary admin
// @Description Transfers ownership of the ledger to a new address. Admin only.
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   owner body dto.ChangeOwnerRequest true "New owner address"
// @Success 204 "Owner changed"
// @Failure 400 {object} map[string]string "Invalid address"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 500 {object} map[string]string "Failed to change owner"
// @Security BearerAuth
// @Router /ledger/owner [post]
func (h *registryHandler) changeOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChangeOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ChangeOwner", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.registryService.ChangeOwner(c.Request.Context(), caller, req.NewOwner); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			logger.Warn("Non-admin attempted owner change")
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not an admin"})
		case errors.Is(err, apperrors.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to change owner in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change owner"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// banEntrepreneur godoc
// @Summary Ban an entrepreneur
// @Description Bars an address from creating campaigns. Idempotent. Admin only.
// @Tags registry
// @Accept  json
// @Produce  json
// @Param   ban body dto.BanRequest true "Address to ban"
// @Success 204 "Address banned"
// @Failure 400 {object} map[string]string "Invalid address"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 500 {object} map[string]string "Failed to ban address"
// @Security BearerAuth
// @Router /ledger/bans [post]
func (h *registryHandler) banEntrepreneur(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BanEntrepreneur", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.registryService.BanEntrepreneur(c.Request.Context(), caller, req.Address); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			logger.Warn("Non-admin attempted ban")
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not an admin"})
		case errors.Is(err, apperrors.ErrInvalidAddress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to ban address in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ban address"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
