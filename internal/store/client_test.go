package store

import (
	"testing"
	"time"

	"github.com/JorgeM-Dev10/sapiens-boards/internal/model"
)

func TestClientCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	cs := NewClientStore(db)

	c, err := cs.Create(user.ID, "Acme", "billing@acme.test", "Acme Corp", "net 30")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	updated, err := cs.Update(c.ID, user.ID, "Acme Inc", c.Email, c.Company, c.Notes)
	if err != nil {
		t.Fatalf("update client: %v", err)
	}
	if updated.Name != "Acme Inc" {
		t.Errorf("name = %q, want %q", updated.Name, "Acme Inc")
	}

	clients, err := cs.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("got %d clients, want 1", len(clients))
	}

	if err := cs.Delete(c.ID, user.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}
	gone, err := cs.GetForUser(c.ID, user.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if gone != nil {
		t.Error("client should be gone")
	}
}

func TestBillingTimeline(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	cs := NewClientStore(db)
	bs := NewBillingStore(db)

	c, _ := cs.Create(user.ID, "Acme", "billing@acme.test", "", "")

	older := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	e1, err := bs.Create(c.ID, "January retainer", 250000, "usd", model.BillingStatusDraft, older, "")
	if err != nil {
		t.Fatalf("create billing entry: %v", err)
	}
	if _, err := bs.Create(c.ID, "March project", 480000, "usd", model.BillingStatusDraft, newer, ""); err != nil {
		t.Fatalf("create billing entry: %v", err)
	}

	entries, err := bs.ListForClient(c.ID)
	if err != nil {
		t.Fatalf("list billing: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Timeline is newest first.
	if entries[0].Title != "March project" {
		t.Errorf("entries[0] = %q, want the newer entry", entries[0].Title)
	}

	sent, err := bs.SetStatus(e1.ID, user.ID, model.BillingStatusSent)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if sent.Status != model.BillingStatusSent {
		t.Errorf("status = %q, want %q", sent.Status, model.BillingStatusSent)
	}

	linked, err := bs.SetPaymentURL(e1.ID, user.ID, "https://pay.example/cs_123")
	if err != nil {
		t.Fatalf("set payment url: %v", err)
	}
	if linked.PaymentURL == nil || *linked.PaymentURL != "https://pay.example/cs_123" {
		t.Errorf("payment url = %v, want the stored link", linked.PaymentURL)
	}
}

func TestBillingOwnershipThroughClient(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	cs := NewClientStore(db)
	bs := NewBillingStore(db)

	c, _ := cs.Create(owner.ID, "Acme", "", "", "")
	e, err := bs.Create(c.ID, "Invoice", 10000, "usd", model.BillingStatusDraft, time.Now().UTC(), "")
	if err != nil {
		t.Fatalf("create billing entry: %v", err)
	}

	got, err := bs.GetForUser(e.ID, other.ID)
	if err != nil {
		t.Fatalf("get billing entry: %v", err)
	}
	if got != nil {
		t.Error("other user should not see the entry")
	}

	if _, err := bs.SetStatus(e.ID, other.ID, model.BillingStatusPaid); err != nil {
		t.Fatalf("set status: %v", err)
	}
	mine, err := bs.GetForUser(e.ID, owner.ID)
	if err != nil {
		t.Fatalf("get billing entry: %v", err)
	}
	if mine.Status != model.BillingStatusDraft {
		t.Errorf("status = %q after foreign update, want draft", mine.Status)
	}
}
