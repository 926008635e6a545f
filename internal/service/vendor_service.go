package service

import (
	"context"
	"strings"

	"billmint/internal/domain"
	"billmint/internal/port"
)

// CreateVendorInput is the DTO for creating a vendor.
type CreateVendorInput struct {
	Name    string `json:"name" binding:"required"`
	GSTNo   string `json:"gst_no"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateVendorInput is the DTO for editing vendor master data.
type UpdateVendorInput struct {
	Name    *string `json:"name"`
	GSTNo   *string `json:"gst_no"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// VendorService manages vendor master data. Vendor names are unique so the
// purchase engine can resolve vendors by name.
type VendorService interface {
	Create(ctx context.Context, input CreateVendorInput) (*domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
	List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error)
	Update(ctx context.Context, id int64, input UpdateVendorInput) (*domain.Vendor, error)
	Delete(ctx context.Context, id int64) error
}

type vendorService struct {
	vendors port.VendorRepository
}

// NewVendorService creates a new VendorService implementation.
func NewVendorService(vendors port.VendorRepository) VendorService {
	return &vendorService{vendors: vendors}
}

func (s *vendorService) Create(ctx context.Context, input CreateVendorInput) (*domain.Vendor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	vendor := &domain.Vendor{
		Name:    name,
		GSTNo:   strings.TrimSpace(input.GSTNo),
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.vendors.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

func (s *vendorService) List(ctx context.Context, offset, limit int) ([]domain.Vendor, int, error) {
	return s.vendors.List(ctx, offset, limit)
}

func (s *vendorService) Update(ctx context.Context, id int64, input UpdateVendorInput) (*domain.Vendor, error) {
	vendor, err := s.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		vendor.Name = name
	}
	if input.GSTNo != nil {
		vendor.GSTNo = strings.TrimSpace(*input.GSTNo)
	}
	if input.Phone != nil {
		vendor.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		vendor.Address = strings.TrimSpace(*input.Address)
	}
	if err := s.vendors.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *vendorService) Delete(ctx context.Context, id int64) error {
	return s.vendors.Delete(ctx, id)
}
