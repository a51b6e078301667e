package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ombreaffaire/authsvc/domain"
	"github.com/ombreaffaire/authsvc/internal/mocks"
)

func createOTPServiceForTest(t *testing.T) (domain.OTPService, *mocks.MockOTPRepository, *mocks.MockUserRepository, *mocks.MockNotificationService, *mocks.MockOTPThrottle) {
	t.Helper()

	otpRepo := mocks.NewMockOTPRepository()
	userRepo := mocks.NewMockUserRepository()
	notificationSvc := mocks.NewMockNotificationService()
	throttle := mocks.NewMockOTPThrottle()

	svc := NewOTPService(otpRepo, userRepo, notificationSvc, throttle, OTPConfig{
		TTL:          10 * time.Minute,
		ResendWindow: 60 * time.Second,
	})

	return svc, otpRepo, userRepo, notificationSvc, throttle
}

func TestOTPServiceImpl_Issue(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMocks    func(*mocks.MockOTPRepository, *mocks.MockUserRepository, *mocks.MockNotificationService, *mocks.MockOTPThrottle)
		expectedError error
		validate      func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle)
	}{
		{
			name:  "successful issue",
			email: "new@example.com",
			setupMocks: func(otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
			},
			expectedError: nil,
			validate: func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				if issue == nil {
					t.Fatal("issue is nil")
				}
				if len(issue.Code) != 6 {
					t.Errorf("expected 6-digit code, got %q", issue.Code)
				}
				n, err := strconv.Atoi(issue.Code)
				if err != nil {
					t.Fatalf("code is not numeric: %q", issue.Code)
				}
				if n < 100000 || n > 999999 {
					t.Errorf("code out of range: %d", n)
				}
				if issue.ExpiresAt.Before(time.Now()) {
					t.Error("code should not be expired immediately after issue")
				}
				sent := notificationSvc.LastSent()
				if sent == nil {
					t.Fatal("expected an email to be sent")
				}
				if sent.To != "new@example.com" {
					t.Errorf("expected email to new@example.com, got %s", sent.To)
				}
			},
		},
		{
			name:  "email is normalized before use",
			email: "N.ew@GMAIL.com",
			setupMocks: func(otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
			},
			expectedError: nil,
			validate: func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				if issue.Email != "new@gmail.com" {
					t.Errorf("expected normalized email, got %s", issue.Email)
				}
				if sent := notificationSvc.LastSent(); sent == nil || sent.To != "new@gmail.com" {
					t.Errorf("expected email sent to normalized address, got %+v", sent)
				}
			},
		},
		{
			name:  "already registered email",
			email: "taken@example.com",
			setupMocks: func(otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
					return &domain.User{ID: 1, Email: email}, nil
				}
			},
			expectedError: domain.ErrUserAlreadyExists,
			validate: func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				if notificationSvc.LastSent() != nil {
					t.Error("no email should be sent for a registered address")
				}
			},
		},
		{
			name:  "resend throttled",
			email: "new@example.com",
			setupMocks: func(otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				throttle.ReserveFunc = func(ctx context.Context, email string) (bool, time.Duration, error) {
					return false, 30 * time.Second, nil
				}
			},
			expectedError: domain.ErrOTPThrottled,
			validate: func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				if notificationSvc.LastSent() != nil {
					t.Error("no email should be sent while throttled")
				}
			},
		},
		{
			name:  "mail delivery failure keeps the stored code",
			email: "new@example.com",
			setupMocks: func(otpRepo *mocks.MockOTPRepository, userRepo *mocks.MockUserRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				notificationSvc.SendEmailFunc = func(to, subject, htmlBody string) error {
					return errors.New("smtp unreachable")
				}
			},
			expectedError: domain.ErrMailDelivery,
			validate: func(t *testing.T, issue *domain.OTPIssue, otpRepo *mocks.MockOTPRepository, notificationSvc *mocks.MockNotificationService, throttle *mocks.MockOTPThrottle) {
				// The slot frees up so the caller can retry immediately.
				if len(throttle.Released) != 1 {
					t.Errorf("expected throttle release after delivery failure, got %v", throttle.Released)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, otpRepo, userRepo, notificationSvc, throttle := createOTPServiceForTest(t)
			tt.setupMocks(otpRepo, userRepo, notificationSvc, throttle)

			issue, err := svc.Issue(context.Background(), tt.email)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.validate != nil {
				tt.validate(t, issue, otpRepo, notificationSvc, throttle)
			}
		})
	}
}

func TestOTPServiceImpl_IssueDeletesPreviousCodes(t *testing.T) {
	svc, otpRepo, _, _, _ := createOTPServiceForTest(t)

	var deleted []string
	var created []*domain.EmailOTP
	otpRepo.DeleteByEmailFunc = func(ctx context.Context, email string) error {
		deleted = append(deleted, email)
		return nil
	}
	otpRepo.CreateFunc = func(ctx context.Context, otp *domain.EmailOTP) error {
		if len(deleted) == 0 {
			t.Error("previous codes must be deleted before the new one is stored")
		}
		created = append(created, otp)
		return nil
	}

	if _, err := svc.Issue(context.Background(), "new@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "new@example.com" {
		t.Errorf("expected one delete for new@example.com, got %v", deleted)
	}
	if len(created) != 1 || created[0].Verified {
		t.Errorf("expected one unverified row, got %+v", created)
	}
}

func TestOTPServiceImpl_Verify(t *testing.T) {
	storedOTP := func(code string, expiresAt time.Time, verified bool) *domain.EmailOTP {
		return &domain.EmailOTP{
			ID:        7,
			Email:     "new@example.com",
			Code:      code,
			Verified:  verified,
			CreatedAt: time.Now().Add(-time.Minute),
			ExpiresAt: expiresAt,
		}
	}

	tests := []struct {
		name          string
		code          string
		setupMocks    func(*mocks.MockOTPRepository)
		expectedError error
	}{
		{
			name: "no otp for email",
			code: "123456",
			setupMocks: func(otpRepo *mocks.MockOTPRepository) {
			},
			expectedError: domain.ErrOTPNotFound,
		},
		{
			name: "expired code fails even when it matches",
			code: "123456",
			setupMocks: func(otpRepo *mocks.MockOTPRepository) {
				otpRepo.LatestByEmailFunc = func(ctx context.Context, email string) (*domain.EmailOTP, error) {
					return storedOTP("123456", time.Now().Add(-time.Second), false), nil
				}
			},
			expectedError: domain.ErrOTPExpired,
		},
		{
			name: "wrong code",
			code: "000000",
			setupMocks: func(otpRepo *mocks.MockOTPRepository) {
				otpRepo.LatestByEmailFunc = func(ctx context.Context, email string) (*domain.EmailOTP, error) {
					return storedOTP("123456", time.Now().Add(5*time.Minute), false), nil
				}
			},
			expectedError: domain.ErrOTPMismatch,
		},
		{
			name: "correct code before expiry",
			code: "123456",
			setupMocks: func(otpRepo *mocks.MockOTPRepository) {
				otpRepo.LatestByEmailFunc = func(ctx context.Context, email string) (*domain.EmailOTP, error) {
					return storedOTP("123456", time.Now().Add(5*time.Minute), false), nil
				}
			},
			expectedError: nil,
		},
		{
			name: "second verification of an already verified code still succeeds",
			code: "123456",
			setupMocks: func(otpRepo *mocks.MockOTPRepository) {
				otpRepo.LatestByEmailFunc = func(ctx context.Context, email string) (*domain.EmailOTP, error) {
					return storedOTP("123456", time.Now().Add(5*time.Minute), true), nil
				}
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, otpRepo, _, _, _ := createOTPServiceForTest(t)
			tt.setupMocks(otpRepo)

			err := svc.Verify(context.Background(), "new@example.com", tt.code)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestOTPServiceImpl_VerifyMarksVerified(t *testing.T) {
	svc, otpRepo, _, _, _ := createOTPServiceForTest(t)

	otpRepo.LatestByEmailFunc = func(ctx context.Context, email string) (*domain.EmailOTP, error) {
		return &domain.EmailOTP{ID: 42, Email: email, Code: "654321", ExpiresAt: time.Now().Add(time.Minute)}, nil
	}
	var markedID uint
	otpRepo.MarkVerifiedFunc = func(ctx context.Context, id uint) error {
		markedID = id
		return nil
	}

	if err := svc.Verify(context.Background(), "new@example.com", "654321"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if markedID != 42 {
		t.Errorf("expected row 42 to be marked verified, got %d", markedID)
	}
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}
