package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billmint/internal/service"
)

// PurchaseHandler handles vendor purchase endpoints.
type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create handles POST /api/v1/purchases
// @Summary Record a purchase
// @Description Record a vendor purchase and credit received quantities to stock
// @Tags purchases
// @Accept json
// @Produce json
// @Param request body service.CreatePurchaseInput true "Purchase details"
// @Success 201 {object} APIResponse{data=service.PurchaseResult} "Purchase recorded"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Vendor or product not found"
// @Router /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input service.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.purchaseService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Update handles PUT /api/v1/purchases/:id
// @Summary Update a purchase
// @Description Edit header fields and upsert lines; quantity changes credit stock by the delta only
// @Tags purchases
// @Accept json
// @Produce json
// @Param id path int true "Purchase ID"
// @Param request body service.UpdatePurchaseInput true "Fields to update"
// @Success 200 {object} APIResponse{data=service.PurchaseResult} "Purchase updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Purchase not found"
// @Failure 409 {object} APIResponse "Insufficient stock for quantity reduction"
// @Router /purchases/{id} [put]
func (h *PurchaseHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.purchaseService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/purchases/:id
// @Summary Delete a purchase
// @Description Delete a purchase and its lines; credited stock is not reversed
// @Tags purchases
// @Produce json
// @Param id path int true "Purchase ID"
// @Success 200 {object} APIResponse "Purchase deleted"
// @Failure 404 {object} APIResponse "Purchase not found"
// @Router /purchases/{id} [delete]
func (h *PurchaseHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "purchase deleted"})
}

// GetByID handles GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	purchase, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, purchase)
}

// List handles GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	purchases, total, err := h.purchaseService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, purchases, PagMeta{Total: total, Offset: offset, Limit: limit})
}
