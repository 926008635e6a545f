package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"billmint/internal/service"
)

// PaymentHandler handles payment ledger endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Add handles POST /api/v1/payments
// @Summary Record a payment
// @Description Record a payment against a sale and refresh the sale's payment status
// @Tags payments
// @Accept json
// @Produce json
// @Param request body service.AddPaymentInput true "Payment details"
// @Success 201 {object} APIResponse{data=service.PaymentResult} "Payment recorded"
// @Failure 400 {object} APIResponse "Validation error"
// @Failure 404 {object} APIResponse "Sale not found"
// @Router /payments [post]
func (h *PaymentHandler) Add(c *gin.Context) {
	var input service.AddPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.paymentService.Add(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Delete handles DELETE /api/v1/payments/:id
// @Summary Delete a payment
// @Description Delete a payment and refresh the sale's payment status
// @Tags payments
// @Produce json
// @Param id path int true "Payment ID"
// @Success 200 {object} APIResponse{data=service.DeletePaymentResult} "Payment deleted"
// @Failure 404 {object} APIResponse "Payment not found"
// @Router /payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.paymentService.Delete(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ListBySale handles GET /api/v1/sales/:id/payments
// @Summary List payments for a sale
// @Tags payments
// @Produce json
// @Param id path int true "Sale ID"
// @Success 200 {object} APIResponse{data=[]domain.SalePayment} "Payments"
// @Failure 404 {object} APIResponse "Sale not found"
// @Router /sales/{id}/payments [get]
func (h *PaymentHandler) ListBySale(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListBySale(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// CustomerLedger handles GET /api/v1/customers/:id/ledger
// @Summary Customer due ledger
// @Description Per-sale paid and pending amounts for a customer, with grand totals
// @Tags payments
// @Produce json
// @Param id path int true "Customer ID"
// @Success 200 {object} APIResponse{data=service.CustomerLedger} "Ledger"
// @Failure 404 {object} APIResponse "Customer not found"
// @Router /customers/{id}/ledger [get]
func (h *PaymentHandler) CustomerLedger(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ledger, err := h.paymentService.CustomerLedger(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, ledger)
}
