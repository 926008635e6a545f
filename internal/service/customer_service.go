package service

import (
	"context"
	"strings"

	"billmint/internal/domain"
	"billmint/internal/port"
)

// CreateCustomerInput is the DTO for creating a customer.
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCustomerInput is the DTO for editing customer master data.
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// CustomerService manages customer master data.
type CustomerService interface {
	Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id int64, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type customerService struct {
	customers port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(customers port.CustomerRepository) CustomerService {
	return &customerService{customers: customers}
}

func (s *customerService) Create(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	customer := &domain.Customer{
		Name:    name,
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, offset, limit int) ([]domain.Customer, int, error) {
	return s.customers.List(ctx, offset, limit)
}

func (s *customerService) Update(ctx context.Context, id int64, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("name must not be empty")
		}
		customer.Name = name
	}
	if input.Phone != nil {
		customer.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Address != nil {
		customer.Address = strings.TrimSpace(*input.Address)
	}
	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, id int64) error {
	return s.customers.Delete(ctx, id)
}
