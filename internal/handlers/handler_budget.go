package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/capital_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/middleware"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// ledgerWarningHeader carries a human readable warning about side effects that were not applied.
const ledgerWarningHeader = "X-Ledger-Warning"

// budgetHandler handles HTTP requests for manual budget adjustments and their ledger entries.
type budgetHandler struct {
	budgetSvc portssvc.BudgetSvcFacade
	currency  string
	posthog   *utils.PosthogClientWrapper
}

// RegisterBudgetRoutes registers routes for funds movements and ledger entries.
func RegisterBudgetRoutes(rg *gin.RouterGroup, budgetSvc portssvc.BudgetSvcFacade, currency string, posthog *utils.PosthogClientWrapper) {
	h := &budgetHandler{budgetSvc: budgetSvc, currency: currency, posthog: posthog}

	budget := rg.Group("/budget")
	{
		budget.POST("/add", h.addFunds)
		budget.POST("/withdraw", h.withdrawFunds)
		budget.GET("/summary", h.summarize)

		entries := budget.Group("/entries")
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PATCH("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// addFunds godoc
// @Summary Add funds
// @Description Increases monthly profit or overall capital of the current period and records a ledger entry
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   request body dto.FundsRequest true "Account and amount"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /budget/add [post]
func (h *budgetHandler) addFunds(c *gin.Context) {
	h.moveFunds(c, h.budgetSvc.AddFunds, "Failed to add funds")
}

// withdrawFunds godoc
// @Summary Withdraw funds
// @Description Decreases monthly profit or overall capital of the current period and records a ledger entry
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   request body dto.FundsRequest true "Account and amount"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient balance"
// @Security BearerAuth
// @Router /budget/withdraw [post]
func (h *budgetHandler) withdrawFunds(c *gin.Context) {
	h.moveFunds(c, h.budgetSvc.WithdrawFunds, "Failed to withdraw funds")
}

func (h *budgetHandler) moveFunds(
	c *gin.Context,
	move func(ctx context.Context, actor domain.Actor, req dto.FundsRequest) (*domain.LedgerEntry, error),
	failMsg string,
) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.FundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "funds request")
		return
	}

	entry, err := move(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err, failMsg)
		return
	}

	logger.Info("Ledger entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("type", string(entry.Type)),
		slog.String("account", string(entry.Account)))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists ledger entries newest effective date first with token pagination
// @Tags budget
// @Produce  json
// @Param   type query string false "addition or withdrawal"
// @Param   account query string false "monthly_profit or overall_capital"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date, inclusive (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /budget/entries [get]
func (h *budgetHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "ledger entry list query")
		return
	}

	resp, err := h.budgetSvc.ListEntries(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Tags budget
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /budget/entries/{entryID} [get]
func (h *budgetHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.budgetSvc.GetEntry(c.Request.Context(), actor, c.Param("entryID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a ledger entry
// @Description Changes description and notes. Amount, type and account cannot be changed.
// @Tags budget
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   request body dto.UpdateLedgerEntryRequest true "Description and notes"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /budget/entries/{entryID} [patch]
func (h *budgetHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "update ledger entry request")
		return
	}

	entry, err := h.budgetSvc.UpdateEntryMetadata(c.Request.Context(), actor, c.Param("entryID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update ledger entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Removes the audit record only. The balance change it recorded is not reversed. Admin only.
// @Tags budget
// @Param   entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Header  204 {string} X-Ledger-Warning "Balance effect that was left in place"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /budget/entries/{entryID} [delete]
func (h *budgetHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entryID := c.Param("entryID")
	entry, err := h.budgetSvc.GetEntry(c.Request.Context(), actor, entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete ledger entry")
		return
	}

	if err := h.budgetSvc.DeleteEntry(c.Request.Context(), actor, entryID); err != nil {
		respondError(c, logger, err, "Failed to delete ledger entry")
		return
	}

	c.Header(ledgerWarningHeader, fmt.Sprintf("%s of %s on %s was not reversed",
		entry.Type, utils.FormatAmount(entry.Amount, h.currency), entry.Account))
	middleware.PosthogEvent(c, h.posthog, "ledger_entry_deleted", map[string]any{
		"entry_id": entry.EntryID,
		"account":  string(entry.Account),
	})
	c.Status(http.StatusNoContent)
}

// summarize godoc
// @Summary Summarize ledger entries
// @Description Totals additions and withdrawals, optionally filtered by type, account and date range
// @Tags budget
// @Produce  json
// @Param   type query string false "addition or withdrawal"
// @Param   account query string false "monthly_profit or overall_capital"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date, inclusive (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /budget/summary [get]
func (h *budgetHandler) summarize(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.LedgerSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "ledger summary query")
		return
	}

	summary, err := h.budgetSvc.Summarize(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, logger, err, "Failed to summarize ledger entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerSummaryResponse(summary))
}
