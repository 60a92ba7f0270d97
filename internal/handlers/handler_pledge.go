package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/OpenPledge/crowdfund_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// pledgeHandler handles HTTP requests related to share purchases.
type pledgeHandler struct {
	pledgeService portssvc.PledgeSvcFacade
}

// newPledgeHandler creates a new pledgeHandler.
func newPledgeHandler(ps portssvc.PledgeSvcFacade) *pledgeHandler {
	return &pledgeHandler{
		pledgeService: ps,
	}
}

// registerPledgeReadRoutes registers the public holding query route.
func registerPledgeReadRoutes(rg *gin.RouterGroup, pledgeService portssvc.PledgeSvcFacade) {
	h := newPledgeHandler(pledgeService)
	rg.GET("/campaigns/:id/shares/:address", h.getShares)
}

// registerPledgeCommandRoutes registers the authenticated pledge route.
func registerPledgeCommandRoutes(rg *gin.RouterGroup, pledgeService portssvc.PledgeSvcFacade) {
	h := newPledgeHandler(pledgeService)
	rg.POST("/campaigns/:id/pledges", h.pledge)
}

// pledge godoc
// @Summary Buy one share of a campaign
// @Description Purchases exactly one share of an ACTIVE campaign for the caller. Payment must satisfy the configured payment policy against the share price.
// @Tags pledges
// @Accept  json
// @Produce  json
// @Param   id path int true "Campaign ID"
// @Param   pledge body dto.PledgeRequest true "Payment amount"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid input or payment policy violation"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 409 {object} map[string]string "Campaign is not active or fully subscribed"
// @Failure 500 {object} map[string]string "Failed to process pledge"
// @Security BearerAuth
// @Router /campaigns/{id}/pledges [post]
func (h *pledgeHandler) pledge(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	var req dto.PledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Pledge", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, err := h.pledgeService.Pledge(c.Request.Context(), caller, campaignID, req.Payment)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, apperrors.ErrInvalidParameters), errors.Is(err, apperrors.ErrInvalidPayment):
			logger.Warn("Rejected pledge payment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrOverfunded), errors.Is(err, apperrors.ErrContractInactive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to process pledge in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process pledge"})
		}
		return
	}

	logger.Info("Share purchased successfully", slog.Uint64("campaign_id", campaignID))
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// getShares godoc
// @Summary Get a backer's holding on a campaign
// @Description Returns the number of shares an address holds on a campaign; zero when it never pledged
// @Tags pledges
// @Produce  json
// @Param   id path int true "Campaign ID"
// @Param   address path string true "Backer address"
// @Success 200 {object} dto.SharesResponse
// @Failure 400 {object} map[string]string "Invalid campaign ID or address"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to retrieve holding"
// @Router /campaigns/{id}/shares/{address} [get]
func (h *pledgeHandler) getShares(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	addr := c.Param("address")
	if !utils.IsValidAddress(addr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address format"})
		return
	}
	addr = utils.NormalizeAddress(addr)

	shares, err := h.pledgeService.SharesPerBacker(c.Request.Context(), campaignID, addr)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			logger.Error("Failed to get holding from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve holding"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SharesResponse{
		CampaignID: campaignID,
		Address:    addr,
		Shares:     shares,
	})
}
