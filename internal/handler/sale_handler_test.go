package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain"
	"billmint/internal/handler"
	"billmint/internal/service"
	"billmint/mocks"
)

func newSaleRouter(svc service.SaleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewSaleHandler(svc)
	r := gin.New()
	r.POST("/api/v1/sales", h.Create)
	r.GET("/api/v1/sales/:id", h.GetByID)
	r.DELETE("/api/v1/sales/:id", h.Delete)
	return r
}

func TestSaleHandler_Create(t *testing.T) {
	svc := &mocks.MockSaleService{}
	svc.On("Create", mock.Anything, mock.AnythingOfType("service.CreateSaleInput")).Return(&service.CreateSaleResult{
		ID:            42,
		BillNo:        "BILL-007",
		TotalAmount:   decimal.NewFromInt(1180),
		PaymentStatus: domain.PaymentStatusUnpaid,
	}, nil)

	body := `{"customer_id":5,"bill_date":"2026-01-15","items":[{"product_id":1,"qty":"10"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newSaleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "BILL-007", data["bill_no"])
}

func TestSaleHandler_Create_InsufficientStockMapsTo409(t *testing.T) {
	svc := &mocks.MockSaleService{}
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, &domain.InsufficientStockError{
		ProductID:   1,
		ProductName: "Widget",
		Requested:   decimal.NewFromInt(10),
		Available:   decimal.NewFromInt(5),
	})

	body := `{"customer_id":5,"bill_date":"2026-01-15","items":[{"product_id":1,"qty":"10"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newSaleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Widget")
}

func TestSaleHandler_Create_BadBody(t *testing.T) {
	svc := &mocks.MockSaleService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newSaleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSaleHandler_GetByID_NotFound(t *testing.T) {
	svc := &mocks.MockSaleService{}
	svc.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrSaleNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/99", nil)
	w := httptest.NewRecorder()
	newSaleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SALE_NOT_FOUND", resp.Error.Code)
}

func TestSaleHandler_InvalidIDParam(t *testing.T) {
	svc := &mocks.MockSaleService{}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/abc", nil)
	w := httptest.NewRecorder()
	newSaleRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
