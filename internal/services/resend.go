package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"
)

const defaultResendBaseURL = "https://api.resend.com"

// ResendConfig represents Resend email service configuration
type ResendConfig struct {
	APIKey     string
	FromEmail  string
	FromName   string
	AdminEmail string
	SiteName   string
	LoginURL   string
	BaseURL    string
}

// ResendNotifier sends account notifications through the Resend API
type ResendNotifier struct {
	config ResendConfig
	client *http.Client
}

// NewResendNotifier creates a new Resend notifier
func NewResendNotifier(config ResendConfig) *ResendNotifier {
	if config.BaseURL == "" {
		config.BaseURL = defaultResendBaseURL
	}
	if config.SiteName == "" {
		config.SiteName = "Registrations"
	}
	return &ResendNotifier{
		config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ResendEmailRequest represents the request structure for Resend API
type ResendEmailRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html,omitempty"`
	Text    string      `json:"text,omitempty"`
	Tags    []ResendTag `json:"tags,omitempty"`
}

// ResendTag represents a tag for email categorization
type ResendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ResendErrorResponse represents error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

func (s *ResendNotifier) getFromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// SendWelcomeEmail tells a newly provisioned attendee that an account was
// created for them. The generated credential is never sent; the attendee sets
// their own password from the login page.
func (s *ResendNotifier) SendWelcomeEmail(email, userName string) error {
	greeting := userName
	if greeting == "" {
		greeting = email
	}

	htmlContent := fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <h1>Welcome to %s</h1>
    <p>Dear %s,</p>
    <p>You were registered as an attendee and an account was created for %s.</p>
    <p>Use the password reset link on the login page to choose your password.</p>
    %s
</body>
</html>`, html.EscapeString(s.config.SiteName), html.EscapeString(greeting), html.EscapeString(email), s.loginLinkHTML())

	textContent := fmt.Sprintf(`Welcome to %s

Dear %s,

You were registered as an attendee and an account was created for %s.
Use the password reset link on the login page to choose your password.
%s`, s.config.SiteName, greeting, email, s.config.LoginURL)

	return s.sendEmail(ResendEmailRequest{
		From:    s.getFromField(),
		To:      []string{email},
		Subject: fmt.Sprintf("Your %s account", s.config.SiteName),
		HTML:    htmlContent,
		Text:    strings.TrimSpace(textContent),
		Tags: []ResendTag{
			{Name: "category", Value: "welcome"},
		},
	})
}

// SendNewUserAdminNotice tells the site administrator about a new account.
// Does nothing when no admin address is configured.
func (s *ResendNotifier) SendNewUserAdminNotice(email, userName string) error {
	if s.config.AdminEmail == "" {
		return nil
	}

	textContent := fmt.Sprintf("New user registration on %s:\n\nName: %s\nEmail: %s", s.config.SiteName, userName, email)
	htmlContent := fmt.Sprintf("<p>New user registration on %s:</p><p>Name: %s<br>Email: %s</p>",
		html.EscapeString(s.config.SiteName), html.EscapeString(userName), html.EscapeString(email))

	return s.sendEmail(ResendEmailRequest{
		From:    s.getFromField(),
		To:      []string{s.config.AdminEmail},
		Subject: fmt.Sprintf("[%s] New User Registration", s.config.SiteName),
		HTML:    htmlContent,
		Text:    textContent,
		Tags: []ResendTag{
			{Name: "category", Value: "admin-new-user"},
		},
	})
}

func (s *ResendNotifier) loginLinkHTML() string {
	if s.config.LoginURL == "" {
		return ""
	}
	link := html.EscapeString(s.config.LoginURL)
	return fmt.Sprintf(`<p><a href="%s">%s</a></p>`, link, link)
}

func (s *ResendNotifier) sendEmail(request ResendEmailRequest) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.config.BaseURL+"/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResp ResendErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errorResp); err != nil || errorResp.Message == "" {
			return fmt.Errorf("failed to send email, status: %d", resp.StatusCode)
		}
		return fmt.Errorf("failed to send email: %s", errorResp.Message)
	}

	return nil
}
