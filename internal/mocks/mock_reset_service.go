package mocks

import (
	"context"

	"github.com/ombreaffaire/authsvc/domain"
)

// MockResetService implements domain.PasswordResetService for testing
type MockResetService struct {
	RequestFunc  func(ctx context.Context, email string) error
	ValidateFunc func(ctx context.Context, token string) error
	ConsumeFunc  func(ctx context.Context, token, newPassword string) error
}

// NewMockResetService creates a new MockResetService with default behaviors
func NewMockResetService() *MockResetService {
	return &MockResetService{}
}

// Request issues a reset token
func (m *MockResetService) Request(ctx context.Context, email string) error {
	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Validate checks a reset token
func (m *MockResetService) Validate(ctx context.Context, token string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// Consume spends a reset token
func (m *MockResetService) Consume(ctx context.Context, token, newPassword string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token, newPassword)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetService = (*MockResetService)(nil)
