package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const sendGridEndpoint = "https://api.sendgrid.com/v3/mail/send"

// SendGridConfig holds SendGrid configuration
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Endpoint  string // overrides the API URL, empty uses SendGrid
}

// SendGridClient sends emails via SendGrid API
type SendGridClient struct {
	config     SendGridConfig
	httpClient *http.Client
}

// NewSendGridClient creates a new SendGrid email client
func NewSendGridClient(config SendGridConfig) *SendGridClient {
	if config.Endpoint == "" {
		config.Endpoint = sendGridEndpoint
	}
	return &SendGridClient{
		config:     config,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// EmailMessage represents an email to send
type EmailMessage struct {
	To          string
	ToName      string
	Subject     string
	HTMLContent string
}

type sendGridRequest struct {
	Personalizations []sendGridPersonalization `json:"personalizations"`
	From             sendGridEmail             `json:"from"`
	Subject          string                    `json:"subject"`
	Content          []sendGridContent         `json:"content"`
}

type sendGridPersonalization struct {
	To []sendGridEmail `json:"to"`
}

type sendGridEmail struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendGridContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Send sends an email via SendGrid
func (c *SendGridClient) Send(ctx context.Context, msg *EmailMessage) error {
	request := sendGridRequest{
		Personalizations: []sendGridPersonalization{
			{To: []sendGridEmail{{Email: msg.To, Name: msg.ToName}}},
		},
		From:    sendGridEmail{Email: c.config.FromEmail, Name: c.config.FromName},
		Subject: msg.Subject,
		Content: []sendGridContent{{Type: "text/html", Value: msg.HTMLContent}},
	}

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}
