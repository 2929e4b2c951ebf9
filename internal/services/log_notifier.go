package services

import "log"

// LogNotifier logs account notifications instead of sending them. Used when
// no Resend API key is configured.
type LogNotifier struct{}

// NewWelcomeNotifier returns a Resend notifier when an API key is configured
// and a LogNotifier otherwise
func NewWelcomeNotifier(config ResendConfig) WelcomeNotifier {
	if config.APIKey != "" {
		log.Println("Email service: Using Resend API")
		return NewResendNotifier(config)
	}
	log.Println("Email service: Using log notifier (no Resend API key provided)")
	return LogNotifier{}
}

// SendWelcomeEmail logs the welcome notification
func (LogNotifier) SendWelcomeEmail(email, userName string) error {
	log.Printf("Mock Email: Welcome email sent to %s (%s)", email, userName)
	return nil
}

// SendNewUserAdminNotice logs the admin notification
func (LogNotifier) SendNewUserAdminNotice(email, userName string) error {
	log.Printf("Mock Email: New user notice for %s (%s)", email, userName)
	return nil
}
