package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/OpenPledge/crowdfund_ledger/internal/apperrors"
	portssvc "github.com/OpenPledge/crowdfund_ledger/internal/core/ports/services"
	"github.com/OpenPledge/crowdfund_ledger/internal/dto"
	"github.com/OpenPledge/crowdfund_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// campaignHandler handles HTTP requests related to campaigns.
type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
}

// newCampaignHandler creates a new campaignHandler.
func newCampaignHandler(cs portssvc.CampaignSvcFacade) *campaignHandler {
	return &campaignHandler{
		campaignService: cs,
	}
}

// registerCampaignReadRoutes registers the public campaign query routes.
func registerCampaignReadRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := newCampaignHandler(campaignService)

	campaigns := rg.Group("/campaigns")
	{
		campaigns.GET("", h.listCampaigns)
		campaigns.GET("/:id", h.getCampaign)
	}
}

// registerCampaignCommandRoutes registers the authenticated campaign
// lifecycle routes.
func registerCampaignCommandRoutes(rg *gin.RouterGroup, campaignService portssvc.CampaignSvcFacade) {
	h := newCampaignHandler(campaignService)

	campaigns := rg.Group("/campaigns")
	{
		campaigns.POST("", h.createCampaign)
		campaigns.POST("/:id/cancel", h.cancelCampaign)
		campaigns.POST("/:id/complete", h.completeCampaign)
	}
}

// parseCampaignID extracts the numeric campaign id from the path.
func parseCampaignID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid campaign ID format"})
		return 0, false
	}
	return id, true
}

// createCampaign godoc
// @Summary List a new campaign
// @Description Creates a campaign owned by the caller. The attached value must cover the listing fee and is retained as protocol revenue.
// @Tags campaigns
// @Accept  json
// @Produce  json
// @Param   campaign body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid input or insufficient listing payment"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is banned"
// @Failure 409 {object} map[string]string "Ledger has been shut down"
// @Failure 500 {object} map[string]string "Failed to create campaign"
// @Security BearerAuth
// @Router /campaigns [post]
func (h *campaignHandler) createCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCampaign", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.campaignService.CreateCampaign(c.Request.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidParameters), errors.Is(err, apperrors.ErrInvalidPayment):
			logger.Warn("Invalid campaign creation request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrBanned):
			logger.Warn("Banned entrepreneur attempted to create campaign")
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is banned from creating campaigns"})
		case errors.Is(err, apperrors.ErrContractInactive):
			c.JSON(http.StatusConflict, gin.H{"error": "Ledger has been shut down"})
		default:
			logger.Error("Failed to create campaign in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign"})
		}
		return
	}

	logger.Info("Campaign created successfully", slog.Uint64("campaign_id", created.ID))
	c.JSON(http.StatusCreated, dto.ToCampaignResponse(created))
}

// getCampaign godoc
// @Summary Get a campaign by ID
// @Description Retrieves a snapshot of a single campaign
// @Tags campaigns
// @Produce  json
// @Param   id path int true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid campaign ID"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 500 {object} map[string]string "Failed to retrieve campaign"
// @Router /campaigns/{id} [get]
func (h *campaignHandler) getCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	campaign, err := h.campaignService.GetCampaign(c.Request.Context(), campaignID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		} else {
			logger.Error("Failed to get campaign from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve campaign"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// listCampaigns godoc
// @Summary List campaigns
// @Description Retrieves campaign snapshots in creation order with the total count
// @Tags campaigns
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListCampaignsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list campaigns"
// @Router /campaigns [get]
func (h *campaignHandler) listCampaigns(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCampaignsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return
	}

	campaigns, total, err := h.campaignService.ListCampaigns(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list campaigns from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list campaigns"})
		return
	}

	resp := dto.ListCampaignsResponse{
		Campaigns: make([]dto.CampaignResponse, 0, len(campaigns)),
		Total:     total,
	}
	for i := range campaigns {
		resp.Campaigns = append(resp.Campaigns, dto.ToCampaignResponse(&campaigns[i]))
	}

	c.JSON(http.StatusOK, resp)
}

// cancelCampaign godoc
// @Summary Cancel a campaign
// @Description Cancels an ACTIVE campaign. Every backer's pledged value moves to their refund balance. Caller must be the campaign's entrepreneur or an admin.
// @Tags campaigns
// @Produce  json
// @Param   id path int true "Campaign ID"
// @Success 200 {object} dto.CampaignResponse
// @Failure 400 {object} map[string]string "Invalid campaign ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not cancel this campaign"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 409 {object} map[string]string "Campaign is not active"
// @Failure 500 {object} map[string]string "Failed to cancel campaign"
// @Security BearerAuth
// @Router /campaigns/{id}/cancel [post]
func (h *campaignHandler) cancelCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, err := h.campaignService.CancelCampaign(c.Request.Context(), caller, campaignID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrContractInactive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnauthorized):
			logger.Warn("Unauthorized campaign cancellation attempt", slog.Uint64("campaign_id", campaignID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller may not cancel this campaign"})
		default:
			logger.Error("Failed to cancel campaign in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel campaign"})
		}
		return
	}

	logger.Info("Campaign cancelled successfully", slog.Uint64("campaign_id", campaignID))
	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

// completeCampaign godoc
// @Summary Complete a campaign
// @Description Completes a fully subscribed ACTIVE campaign. The protocol fee is retained and the net payout is recorded for the entrepreneur. Caller must be the campaign's entrepreneur or an admin.
// @Tags campaigns
// @Produce  json
// @Param   id path int true "Campaign ID"
// @Success 200 {object} dto.CompleteCampaignResponse
// @Failure 400 {object} map[string]string "Invalid campaign ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller may not complete this campaign"
// @Failure 404 {object} map[string]string "Campaign not found"
// @Failure 409 {object} map[string]string "Campaign is not active or not fully subscribed"
// @Failure 500 {object} map[string]string "Failed to complete campaign"
// @Security BearerAuth
// @Router /campaigns/{id}/complete [post]
func (h *campaignHandler) completeCampaign(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	campaignID, ok := parseCampaignID(c)
	if !ok {
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	campaign, settlement, err := h.campaignService.CompleteCampaign(c.Request.Context(), caller, campaignID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		case errors.Is(err, apperrors.ErrInvalidState), errors.Is(err, apperrors.ErrContractInactive):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrUnauthorized):
			logger.Warn("Unauthorized campaign completion attempt", slog.Uint64("campaign_id", campaignID))
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller may not complete this campaign"})
		default:
			logger.Error("Failed to complete campaign in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete campaign"})
		}
		return
	}

	logger.Info("Campaign completed successfully",
		slog.Uint64("campaign_id", campaignID),
		slog.String("net_payout", settlement.NetPayout.String()))
	c.JSON(http.StatusOK, dto.CompleteCampaignResponse{
		Campaign:   dto.ToCampaignResponse(campaign),
		Settlement: dto.ToSettlementResponse(settlement),
	})
}
