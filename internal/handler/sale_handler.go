package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billmint/internal/service"
)

// SaleHandler handles billing endpoints.
type SaleHandler struct {
	saleService service.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles POST /api/v1/sales
// @Summary Create a sale
// @Description Bill a customer: computes line amounts, debits stock, assigns a bill number and records any cash received
// @Tags sales
// @Accept json
// @Produce json
// @Param request body service.CreateSaleInput true "Sale details"
// @Success 201 {object} APIResponse{data=service.CreateSaleResult} "Sale created"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Customer or product not found"
// @Failure 409 {object} APIResponse "Insufficient stock or duplicate bill number"
// @Router /sales [post]
func (h *SaleHandler) Create(c *gin.Context) {
	var input service.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.saleService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Update handles PUT /api/v1/sales/:id
// @Summary Update a sale
// @Description Edit sale header fields; a non-null items array replaces every line, restoring and re-debiting stock
// @Tags sales
// @Accept json
// @Produce json
// @Param id path int true "Sale ID"
// @Param request body service.UpdateSaleInput true "Fields to update"
// @Success 200 {object} APIResponse{data=service.UpdateSaleResult} "Sale updated"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Sale not found"
// @Failure 409 {object} APIResponse "Insufficient stock"
// @Router /sales/{id} [put]
func (h *SaleHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.saleService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Delete handles DELETE /api/v1/sales/:id
// @Summary Delete a sale
// @Description Delete a sale and its lines, optionally restoring debited stock
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} APIResponse "Sale deleted"
// @Failure 404 {object} APIResponse "Sale not found"
// @Router /sales/{id} [delete]
func (h *SaleHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "sale deleted"})
}

// GetByID handles GET /api/v1/sales/:id
// @Summary Get sale by ID
// @Tags sales
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} APIResponse{data=domain.SaleWithItems} "Sale with items"
// @Failure 404 {object} APIResponse "Sale not found"
// @Router /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, sale)
}

// List handles GET /api/v1/sales
// @Summary List sales
// @Tags sales
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Sale,meta=PagMeta} "List of sales"
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	sales, total, err := h.saleService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, sales, PagMeta{Total: total, Offset: offset, Limit: limit})
}
