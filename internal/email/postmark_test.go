package email

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

type rewriteTransport struct {
	base   http.RoundTripper
	target string
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = "http"
	req.URL.Host = t.target[len("http://"):]
	return t.base.RoundTrip(req)
}

func testEntry(paymentURL string) *model.BillingEntry {
	e := &model.BillingEntry{
		ID:          1,
		Title:       "March retainer",
		AmountCents: 250000,
		Currency:    "usd",
		Status:      model.BillingStatusDraft,
		EntryDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if paymentURL != "" {
		e.PaymentURL = &paymentURL
	}
	return e
}

func TestSendInvoice(t *testing.T) {
	var received postmarkEmail
	var gotToken string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Postmark-Server-Token")
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "billing@example.com",
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, target: server.URL}}))

	if err := client.SendInvoice("acme@example.com", "Acme", testEntry("")); err != nil {
		t.Fatalf("send invoice: %v", err)
	}

	if gotToken != "test-token" {
		t.Errorf("server token = %q, want %q", gotToken, "test-token")
	}
	if received.To != "acme@example.com" {
		t.Errorf("To = %q, want %q", received.To, "acme@example.com")
	}
	if received.From != "billing@example.com" {
		t.Errorf("From = %q, want %q", received.From, "billing@example.com")
	}
	if received.Subject != "Invoice: March retainer" {
		t.Errorf("Subject = %q", received.Subject)
	}
	if !strings.Contains(received.TextBody, "2500.00 usd") {
		t.Errorf("TextBody = %q, want the formatted amount", received.TextBody)
	}
	if strings.Contains(received.TextBody, "Pay online") {
		t.Error("body should not mention a payment link when none exists")
	}
}

func TestSendInvoiceIncludesPaymentLink(t *testing.T) {
	var received postmarkEmail

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"MessageID": "test-id"}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "billing@example.com",
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, target: server.URL}}))

	if err := client.SendInvoice("acme@example.com", "Acme", testEntry("https://pay.example/cs_123")); err != nil {
		t.Fatalf("send invoice: %v", err)
	}

	if !strings.Contains(received.TextBody, "https://pay.example/cs_123") {
		t.Errorf("TextBody = %q, want the payment link", received.TextBody)
	}
	if !strings.Contains(received.HtmlBody, `href="https://pay.example/cs_123"`) {
		t.Errorf("HtmlBody = %q, want the payment link anchor", received.HtmlBody)
	}
}

func TestSendInvoiceUnconfigured(t *testing.T) {
	client := NewClient("", "billing@example.com")
	if client.Configured() {
		t.Error("client without a token should not be configured")
	}
	if err := client.SendInvoice("acme@example.com", "Acme", testEntry("")); err == nil {
		t.Error("unconfigured client should refuse to send")
	}
}

func TestSendInvoiceAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"ErrorCode": 300}`))
	}))
	defer server.Close()

	client := NewClient("test-token", "billing@example.com",
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, target: server.URL}}))

	if err := client.SendInvoice("acme@example.com", "Acme", testEntry("")); err == nil {
		t.Error("API error status should surface as an error")
	}
}
