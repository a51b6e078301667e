package mocks

import (
	"sync"

	"github.com/ombreaffaire/authsvc/domain"
)

// SentEmail captures one outbound message for assertions
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendEmailFunc func(to, subject, htmlBody string) error

	mu   sync.Mutex
	Sent []SentEmail
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendEmail records the message and delegates to SendEmailFunc when set
func (m *MockNotificationService) SendEmail(to, subject, htmlBody string) error {
	if m.SendEmailFunc != nil {
		if err := m.SendEmailFunc(to, subject, htmlBody); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// LastSent returns the most recent message, or nil when none was sent
func (m *MockNotificationService) LastSent() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return nil
	}
	last := m.Sent[len(m.Sent)-1]
	return &last
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
