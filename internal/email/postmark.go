package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type Client struct {
	serverToken string
	fromEmail   string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(serverToken, fromEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HtmlBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// SendInvoice emails a billing entry to the client, including the payment
// link when one has been generated.
func (c *Client) SendInvoice(toEmail, clientName string, entry *model.BillingEntry) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	amount := fmt.Sprintf("%.2f %s", float64(entry.AmountCents)/100, entry.Currency)
	subject := fmt.Sprintf("Invoice: %s", entry.Title)

	textBody := fmt.Sprintf("Hi %s,\n\nInvoice %q for %s is ready.\n", clientName, entry.Title, amount)
	htmlBody := fmt.Sprintf("<p>Hi %s,</p><p>Invoice <strong>%s</strong> for %s is ready.</p>", clientName, entry.Title, amount)
	if entry.PaymentURL != nil && *entry.PaymentURL != "" {
		textBody += fmt.Sprintf("\nPay online: %s\n", *entry.PaymentURL)
		htmlBody += fmt.Sprintf(`<p><a href="%s">Pay online</a></p>`, *entry.PaymentURL)
	}

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlBody,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", "https://api.postmarkapp.com/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
