package mocks

import (
	"context"

	"github.com/ombreaffaire/authsvc/domain"
)

// MockResetRepository implements domain.PasswordResetRepository for testing
type MockResetRepository struct {
	CreateFunc         func(ctx context.Context, reset *domain.PasswordReset) error
	FindByTokenFunc    func(ctx context.Context, token string) (*domain.PasswordReset, error)
	DeleteByEmailFunc  func(ctx context.Context, email string) error
	ConsumeByTokenFunc func(ctx context.Context, token string) (bool, error)
}

// NewMockResetRepository creates a new MockResetRepository with default behaviors
func NewMockResetRepository() *MockResetRepository {
	return &MockResetRepository{}
}

// Create stores a reset token record
func (m *MockResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, reset)
	}
	// Default behavior: success
	return nil
}

// FindByToken finds a reset record by token
func (m *MockResetRepository) FindByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenInvalid
}

// DeleteByEmail removes all reset records for an email
func (m *MockResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// ConsumeByToken conditionally deletes the record for a token
func (m *MockResetRepository) ConsumeByToken(ctx context.Context, token string) (bool, error) {
	if m.ConsumeByTokenFunc != nil {
		return m.ConsumeByTokenFunc(ctx, token)
	}
	// Default behavior: claimed
	return true, nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetRepository = (*MockResetRepository)(nil)
