package mocks

import (
	"context"

	"github.com/ombreaffaire/authsvc/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc  func(ctx context.Context, email string) (*domain.OTPIssue, error)
	VerifyFunc func(ctx context.Context, email, code string) error
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue generates and sends a code
func (m *MockOTPService) Issue(ctx context.Context, email string) (*domain.OTPIssue, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	// Default behavior: success
	return &domain.OTPIssue{Email: email, Code: "123456"}, nil
}

// Verify checks a submitted code
func (m *MockOTPService) Verify(ctx context.Context, email, code string) error {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, email, code)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
