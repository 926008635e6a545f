package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/domain"
	"billmint/internal/money"
	"billmint/internal/port"
)

// CreateProductInput is the DTO for creating a catalog product. Size is
// the opening stock quantity.
type CreateProductInput struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate"`
	Size decimal.Decimal `json:"size"`
	GST  string          `json:"gst"`
	Unit string          `json:"unit"`
}

// UpdateProductInput is the DTO for editing product master data. Stock is
// not editable here; it moves only through sale and purchase transactions.
type UpdateProductInput struct {
	Name *string          `json:"name"`
	Rate *decimal.Decimal `json:"rate"`
	GST  *string          `json:"gst"`
	Unit *string          `json:"unit"`
}

// ProductService manages the product catalog.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	products port.ProductRepository
}

// NewProductService creates a new ProductService implementation.
func NewProductService(products port.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if input.Rate.IsNegative() {
		return nil, domain.NewValidationError("rate must not be negative")
	}
	if input.Size.IsNegative() {
		return nil, domain.NewValidationError("size must not be negative")
	}
	gst := strings.TrimSpace(input.GST)
	if gst == "" {
		gst = "0%"
	} else if _, err := money.ParseGSTPercent(gst); err != nil {
		return nil, err
	}
	unit := input.Unit
	if unit == "" {
		unit = domain.DefaultUnit
	}

	product := &domain.Product{
		Name: name,
		Rate: input.Rate,
		Size: input.Size,
		GST:  gst,
		Unit: unit,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, offset, limit int) ([]domain.Product, int, error) {
	return s.products.List(ctx, offset, limit)
}

func (s *productService) Update(ctx context.Context, id int64, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		product.Name = name
	}
	if input.Rate != nil {
		if input.Rate.IsNegative() {
			return nil, domain.NewValidationError("rate must not be negative")
		}
		product.Rate = *input.Rate
	}
	if input.GST != nil {
		if _, err := money.ParseGSTPercent(*input.GST); err != nil {
			return nil, err
		}
		product.GST = strings.TrimSpace(*input.GST)
	}
	if input.Unit != nil && *input.Unit != "" {
		product.Unit = *input.Unit
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}
