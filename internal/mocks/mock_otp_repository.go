package mocks

import (
	"context"

	"github.com/ombreaffaire/authsvc/domain"
)

// MockOTPRepository implements domain.OTPRepository for testing
type MockOTPRepository struct {
	CreateFunc        func(ctx context.Context, otp *domain.EmailOTP) error
	LatestByEmailFunc func(ctx context.Context, email string) (*domain.EmailOTP, error)
	MarkVerifiedFunc  func(ctx context.Context, id uint) error
	DeleteByEmailFunc func(ctx context.Context, email string) error
}

// NewMockOTPRepository creates a new MockOTPRepository with default behaviors
func NewMockOTPRepository() *MockOTPRepository {
	return &MockOTPRepository{}
}

// Create stores an OTP record
func (m *MockOTPRepository) Create(ctx context.Context, otp *domain.EmailOTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	// Default behavior: success
	return nil
}

// LatestByEmail returns the most recent OTP record for an email
func (m *MockOTPRepository) LatestByEmail(ctx context.Context, email string) (*domain.EmailOTP, error) {
	if m.LatestByEmailFunc != nil {
		return m.LatestByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrOTPNotFound
}

// MarkVerified flags an OTP record as verified
func (m *MockOTPRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// DeleteByEmail removes all OTP records for an email
func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string) error {
	if m.DeleteByEmailFunc != nil {
		return m.DeleteByEmailFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPRepository = (*MockOTPRepository)(nil)
