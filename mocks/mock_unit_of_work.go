package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billmint/internal/port"
)

// MockUnitOfWork is a mock implementation of port.UnitOfWork. WithinTx
// runs the callback against the embedded MockTx unless an error was
// stubbed, mirroring how a real transaction either runs or fails to open.
type MockUnitOfWork struct {
	mock.Mock
	Tx *MockTx
}

// NewMockUnitOfWork returns a MockUnitOfWork with a fresh MockTx attached.
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{Tx: &MockTx{}}
}

func (m *MockUnitOfWork) WithinTx(ctx context.Context, fn func(tx port.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}
