package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billmint/internal/service"
)

// VendorHandler handles vendor master-data endpoints.
type VendorHandler struct {
	vendorService service.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create handles POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	var input service.CreateVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, vendor)
}

// GetByID handles GET /api/v1/vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vendor)
}

// List handles GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	vendors, total, err := h.vendorService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input service.UpdateVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vendor)
}

// Delete handles DELETE /api/v1/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "vendor deleted"})
}
