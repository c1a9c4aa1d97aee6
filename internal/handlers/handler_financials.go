package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/middleware"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// financialsHandler handles HTTP requests for balances, periods and rollover.
type financialsHandler struct {
	balanceSvc  portssvc.BalanceSvc
	periodSvc   portssvc.PeriodSvcFacade
	rolloverSvc portssvc.RolloverSvc
	posthog     *utils.PosthogClientWrapper
}

// RegisterFinancialsRoutes registers routes for balances, periods and rollover.
func RegisterFinancialsRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	h := &financialsHandler{
		balanceSvc:  services.Balance,
		periodSvc:   services.Period,
		rolloverSvc: services.Rollover,
		posthog:     posthog,
	}

	financials := rg.Group("/financials")
	{
		financials.GET("/current", h.getCurrentBalances)
		financials.GET("/summary", h.getSummary)
		financials.GET("/periods", h.listPeriods)
		financials.GET("/periods/:year/:month", h.getPeriod)
		financials.POST("/rollover", h.rollover)
	}
}

// getCurrentBalances godoc
// @Summary Get current balances
// @Description Admins get the period store balances; members get balances projected from their own completed orders
// @Tags financials
// @Produce  json
// @Success 200 {object} dto.BalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get balances"
// @Security BearerAuth
// @Router /financials/current [get]
func (h *financialsHandler) getCurrentBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	source := h.balanceSvc.For(actor)
	balances, err := source.CurrentBalances(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to get balances")
		return
	}

	logger.Info("Current balances retrieved", slog.String("source", string(source.Kind())))
	c.JSON(http.StatusOK, dto.ToBalancesResponse(balances))
}

// getSummary godoc
// @Summary Get financial summary
// @Description Current balances plus the previous month and year-to-date profit and revenue
// @Tags financials
// @Produce  json
// @Success 200 {object} dto.FinancialSummaryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to get summary"
// @Security BearerAuth
// @Router /financials/summary [get]
func (h *financialsHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.balanceSvc.For(actor).Summary(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to get summary")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialSummaryResponse(summary))
}

// listPeriods godoc
// @Summary List periods
// @Description Lists stored monthly periods newest first (admin only)
// @Tags financials
// @Produce  json
// @Param   year query int false "Only periods of this year"
// @Param   limit query int false "Max periods" default(24)
// @Param   offset query int false "Offset"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /financials/periods [get]
func (h *financialsHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListPeriodsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "period list query")
		return
	}

	periods, err := h.periodSvc.ListPeriods(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list periods")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(periods))
}

// getPeriod godoc
// @Summary Get a period
// @Description Retrieves the balances of one month without creating it (admin only)
// @Tags financials
// @Produce  json
// @Param   year path int true "Year"
// @Param   month path int true "Month (1-12)"
// @Success 200 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid year or month"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Period not found"
// @Security BearerAuth
// @Router /financials/periods/{year}/{month} [get]
func (h *financialsHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, errYear := strconv.Atoi(c.Param("year"))
	month, errMonth := strconv.Atoi(c.Param("month"))
	if errYear != nil || errMonth != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Year and month must be numbers"})
		return
	}

	period, err := h.periodSvc.GetPeriod(c.Request.Context(), actor, year, month)
	if err != nil {
		respondError(c, logger, err, "Failed to get period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// rollover godoc
// @Summary Roll over the current period
// @Description Folds the current month's profit into capital and opens next month with that capital (admin only)
// @Tags financials
// @Produce  json
// @Success 200 {object} dto.RolloverResponse
// @Header  200 {string} X-Ledger-Warning "Capital movements the rollover will not carry forward"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Period already rolled over"
// @Security BearerAuth
// @Router /financials/rollover [post]
func (h *financialsHandler) rollover(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.rolloverSvc.Rollover(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "Failed to roll over period")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "period_rolled_over", map[string]any{
		"period":              result.Closed.Key().String(),
		"next_period_created": result.Created,
	})
	c.Header(ledgerWarningHeader, result.CarryForwardWarning())
	c.JSON(http.StatusOK, dto.ToRolloverResponse(result))
}
