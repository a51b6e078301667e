package notifications

import (
	"fmt"

	"github.com/ombreaffaire/authsvc/domain"
	"github.com/wneessen/go-mail"
)

// SMTPServiceImpl implements domain.NotificationService over SMTP.
type SMTPServiceImpl struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

// NewSMTPService creates a new SMTP notification service
func NewSMTPService(host string, port int, username, password, from, fromName string) domain.NotificationService {
	return &SMTPServiceImpl{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
	}
}

// SendEmail implements domain.NotificationService
func (s *SMTPServiceImpl) SendEmail(to, subject, htmlBody string) error {
	// If no SMTP host is configured, log instead of sending
	if s.host == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n%s\n", to, subject, htmlBody)
		return nil
	}

	msg := mail.NewMsg()

	if s.fromName != "" {
		if err := msg.FromFormat(s.fromName, s.from); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.from); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	// Implicit TLS for the SMTPS port, STARTTLS for the rest
	if s.port == 465 {
		opts = append(opts, mail.WithSSL())
	}

	if s.username != "" && s.password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}
