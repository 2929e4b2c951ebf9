package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResendServer(t *testing.T, status int, body string, captured *[]ResendEmailRequest) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		var req ResendEmailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		*captured = append(*captured, req)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestResendNotifier_SendWelcomeEmail(t *testing.T) {
	var captured []ResendEmailRequest
	server := newTestResendServer(t, http.StatusOK, `{"id":"email_1"}`, &captured)

	notifier := NewResendNotifier(ResendConfig{
		APIKey:    "re_test",
		FromEmail: "noreply@example.com",
		FromName:  "Conference Desk",
		SiteName:  "Summit",
		LoginURL:  "https://example.com/login",
		BaseURL:   server.URL,
	})

	err := notifier.SendWelcomeEmail("ana@example.com", "Ana <Silva>")
	require.NoError(t, err)
	require.Len(t, captured, 1)

	sent := captured[0]
	assert.Equal(t, "Conference Desk <noreply@example.com>", sent.From)
	assert.Equal(t, []string{"ana@example.com"}, sent.To)
	assert.Equal(t, "Your Summit account", sent.Subject)
	assert.Contains(t, sent.HTML, "Ana &lt;Silva&gt;")
	assert.Contains(t, sent.Text, "https://example.com/login")
	assert.Equal(t, []ResendTag{{Name: "category", Value: "welcome"}}, sent.Tags)
}

func TestResendNotifier_SendNewUserAdminNotice(t *testing.T) {
	t.Run("sends to admin address", func(t *testing.T) {
		var captured []ResendEmailRequest
		server := newTestResendServer(t, http.StatusOK, `{"id":"email_2"}`, &captured)

		notifier := NewResendNotifier(ResendConfig{
			APIKey:     "re_test",
			FromEmail:  "noreply@example.com",
			AdminEmail: "admin@example.com",
			SiteName:   "Summit",
			BaseURL:    server.URL,
		})

		require.NoError(t, notifier.SendNewUserAdminNotice("ana@example.com", "Ana Silva"))
		require.Len(t, captured, 1)
		assert.Equal(t, []string{"admin@example.com"}, captured[0].To)
		assert.Equal(t, "[Summit] New User Registration", captured[0].Subject)
		assert.Contains(t, captured[0].Text, "Email: ana@example.com")
	})

	t.Run("no admin address configured", func(t *testing.T) {
		var captured []ResendEmailRequest
		server := newTestResendServer(t, http.StatusOK, `{}`, &captured)

		notifier := NewResendNotifier(ResendConfig{APIKey: "re_test", BaseURL: server.URL})

		require.NoError(t, notifier.SendNewUserAdminNotice("ana@example.com", "Ana Silva"))
		assert.Empty(t, captured)
	})
}

func TestResendNotifier_ErrorResponses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "api error message",
			status:  http.StatusUnprocessableEntity,
			body:    `{"name":"validation_error","message":"Invalid to field"}`,
			wantErr: "failed to send email: Invalid to field",
		},
		{
			name:    "unreadable error body",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: "failed to send email, status: 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured []ResendEmailRequest
			server := newTestResendServer(t, tt.status, tt.body, &captured)
			notifier := NewResendNotifier(ResendConfig{APIKey: "re_test", FromEmail: "noreply@example.com", BaseURL: server.URL})

			err := notifier.SendWelcomeEmail("ana@example.com", "Ana")
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestNewWelcomeNotifier(t *testing.T) {
	assert.IsType(t, LogNotifier{}, NewWelcomeNotifier(ResendConfig{}))
	assert.IsType(t, &ResendNotifier{}, NewWelcomeNotifier(ResendConfig{APIKey: "re_test"}))

	var notifier LogNotifier
	assert.NoError(t, notifier.SendWelcomeEmail("ana@example.com", "Ana"))
	assert.NoError(t, notifier.SendNewUserAdminNotice("ana@example.com", "Ana"))
}
