package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billmint/internal/service"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	orderService service.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(orderService service.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{orderService: orderService}
}

// Create handles POST /api/v1/purchase-orders
// @Summary Draft a purchase order
// @Description Draft an order to a vendor with per-line discount and GST; stock is not affected
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param request body service.CreateOrderInput true "Order details"
// @Success 201 {object} APIResponse{data=domain.PurchaseOrderWithItems} "Order created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Vendor or product not found"
// @Router /purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, order)
}

// Update handles PUT /api/v1/purchase-orders/:id
// @Summary Update a purchase order
// @Description Edit header fields; a non-null items array replaces every line
// @Tags purchase-orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body service.UpdateOrderInput true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.PurchaseOrderWithItems} "Order updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Order not found"
// @Router /purchase-orders/{id} [put]
func (h *PurchaseOrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// Delete handles DELETE /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "purchase order deleted"})
}

// GetByID handles GET /api/v1/purchase-orders/:id
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, order)
}

// List handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	orders, total, err := h.orderService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}
