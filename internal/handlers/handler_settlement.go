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

// settlementHandler handles HTTP requests for refunds, fee withdrawal and
// the irreversible shutdown.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
	}
}

// registerSettlementReadRoutes registers the public refund balance query.
func registerSettlementReadRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)
	rg.GET("/refunds/:address", h.getRefundBalance)
}

// registerSettlementCommandRoutes registers the authenticated settlement
// routes. These stay reachable after shutdown so balances can be drained.
func registerSettlementCommandRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	rg.POST("/refunds/claim", h.claimRefund)
	rg.POST("/fees/withdraw", h.withdrawFees)
	rg.POST("/ledger/destroy", h.destroyLedger)
}

// claimRefund godoc
// @Summary Claim the caller's refund balance
// @Description Pays out and zeroes the caller's full refund balance in one atomic step
// @Tags settlement
// @Produce  json
// @Success 200 {object} dto.PayoutResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Nothing to refund"
// @Failure 500 {object} map[string]string "Failed to claim refund"
// @Security BearerAuth
// @Router /refunds/claim [post]
func (h *settlementHandler) claimRefund(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, err := h.settlementService.RefundInvestor(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToRefund) {
			c.JSON(http.StatusConflict, gin.H{"error": "Nothing to refund"})
		} else {
			logger.Error("Failed to claim refund in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim refund"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PayoutResponse{Address: caller, Amount: amount})
}

// withdrawFees godoc
// @Summary Withdraw the collected protocol fees
// @Description Pays out and zeroes the full fee balance. Admin only.
// @Tags settlement
// @Produce  json
// @Success 200 {object} dto.PayoutResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 409 {object} map[string]string "Nothing to withdraw"
// @Failure 500 {object} map[string]string "Failed to withdraw fees"
// @Security BearerAuth
// @Router /fees/withdraw [post]
func (h *settlementHandler) withdrawFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, err := h.settlementService.WithdrawFees(c.Request.Context(), caller)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			logger.Warn("Non-admin attempted fee withdrawal")
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not an admin"})
		case errors.Is(err, apperrors.ErrNothingToWithdraw):
			c.JSON(http.StatusConflict, gin.H{"error": "Nothing to withdraw"})
		default:
			logger.Error("Failed to withdraw fees in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw fees"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.PayoutResponse{Address: caller, Amount: amount})
}

// destroyLedger godoc
// @Summary Irreversibly shut the ledger down
// @Description Flips the ledger inactive. No campaigns or pledges are accepted afterwards; refund claims and fee withdrawal remain permitted. Admin only.
// @Tags settlement
// @Produce  json
// @Success 204 "Ledger shut down"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Caller is not an admin"
// @Failure 500 {object} map[string]string "Failed to shut the ledger down"
// @Security BearerAuth
// @Router /ledger/destroy [post]
func (h *settlementHandler) destroyLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		logger.Error("Caller address not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.settlementService.DestroyContract(c.Request.Context(), caller); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			logger.Warn("Non-admin attempted ledger shutdown")
			c.JSON(http.StatusForbidden, gin.H{"error": "Caller is not an admin"})
		} else {
			logger.Error("Failed to shut the ledger down", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to shut the ledger down"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// getRefundBalance godoc
// @Summary Get an address' claimable refund balance
// @Description Returns the refund balance for an address; zero when nothing is claimable
// @Tags settlement
// @Produce  json
// @Param   address path string true "Ledger address"
// @Success 200 {object} dto.RefundBalanceResponse
// @Failure 400 {object} map[string]string "Invalid address"
// @Failure 500 {object} map[string]string "Failed to retrieve refund balance"
// @Router /refunds/{address} [get]
func (h *settlementHandler) getRefundBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	addr := c.Param("address")
	if !utils.IsValidAddress(addr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address format"})
		return
	}
	addr = utils.NormalizeAddress(addr)

	balance, err := h.settlementService.RefundBalance(c.Request.Context(), addr)
	if err != nil {
		logger.Error("Failed to get refund balance from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve refund balance"})
		return
	}

	c.JSON(http.StatusOK, dto.RefundBalanceResponse{Address: addr, Balance: balance})
}
