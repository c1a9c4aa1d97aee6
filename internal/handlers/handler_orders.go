package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/capital_ledger/internal/apperrors"
	portssvc "github.com/SscSPs/capital_ledger/internal/core/ports/services"
	"github.com/SscSPs/capital_ledger/internal/dto"
	"github.com/SscSPs/capital_ledger/internal/middleware"
	"github.com/SscSPs/capital_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests for the order lifecycle.
type orderHandler struct {
	orderSvc portssvc.OrderSvcFacade
	posthog  *utils.PosthogClientWrapper
}

// RegisterOrderRoutes registers routes related to orders.
func RegisterOrderRoutes(rg *gin.RouterGroup, orderSvc portssvc.OrderSvcFacade, posthog *utils.PosthogClientWrapper) {
	h := &orderHandler{orderSvc: orderSvc, posthog: posthog}

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PATCH("/:orderID", h.updateOrder)
		orders.POST("/:orderID/complete", h.completeOrder)
	}
}

// createOrder godoc
// @Summary Create an order
// @Description Creates a pending order and deducts its cost from the current period's capital
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order details"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "Insufficient capital"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "create order request")
		return
	}

	order, err := h.orderSvc.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, logger, err, "Failed to create order")
		return
	}

	middleware.PosthogEvent(c, h.posthog, "order_created", map[string]any{"order_id": order.OrderID})
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders
// @Description Members see their own orders, admins see all
// @Tags orders
// @Produce  json
// @Param   status query string false "pending or completed"
// @Param   limit query int false "Max orders" default(50)
// @Param   offset query int false "Offset"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "order list query")
		return
	}

	orders, err := h.orderSvc.ListOrders(c.Request.Context(), actor, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list orders")
		return
	}

	logger.Info("Orders listed successfully", slog.Int("count", len(orders)))
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// getOrder godoc
// @Summary Get an order
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderSvc.GetOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrder godoc
// @Summary Update an order
// @Description Patches order fields and recomputes profit. Period balances already accrued are not adjusted. Setting status to completed completes the order.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "Fields to change"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{orderID} [patch]
func (h *orderHandler) updateOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "update order request")
		return
	}

	order, err := h.orderSvc.UpdateOrder(c.Request.Context(), actor, c.Param("orderID"), req)
	if err != nil {
		respondError(c, logger, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// completeOrder godoc
// @Summary Complete an order
// @Description Accrues the order's customer price and profit into the period current now. Completing twice is a no-op reported with alreadyCompleted.
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.CompleteOrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /orders/{orderID}/complete [post]
func (h *orderHandler) completeOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	order, err := h.orderSvc.CompleteOrder(c.Request.Context(), actor, c.Param("orderID"))
	alreadyCompleted := errors.Is(err, apperrors.ErrAlreadyCompleted)
	if err != nil && !alreadyCompleted {
		respondError(c, logger, err, "Failed to complete order")
		return
	}

	if !alreadyCompleted {
		middleware.PosthogEvent(c, h.posthog, "order_completed", map[string]any{"order_id": order.OrderID})
	}
	c.JSON(http.StatusOK, dto.CompleteOrderResponse{
		Order:            dto.ToOrderResponse(order),
		AlreadyCompleted: alreadyCompleted,
	})
}
