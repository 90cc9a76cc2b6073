package store

import "testing"

func TestPushSubscribeUpsertsByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ps := NewPushStore(db)

	if _, err := ps.Subscribe(user.ID, "https://push.example/ep", "p256-old", "auth-old", "laptop"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Re-subscribing the same endpoint replaces the keys instead of
	// piling up rows.
	second, err := ps.Subscribe(user.ID, "https://push.example/ep", "p256-new", "auth-new", "laptop")
	if err != nil {
		t.Fatalf("resubscribe: %v", err)
	}
	if second.P256dhKey != "p256-new" {
		t.Errorf("p256dh = %q, want the refreshed key", second.P256dhKey)
	}

	subs, err := ps.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("got %d subscriptions, want 1", len(subs))
	}
}

func TestPushDeleteByEndpoint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	ps := NewPushStore(db)

	if _, err := ps.Subscribe(user.ID, "https://push.example/gone", "p", "a", ""); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := ps.DeleteByEndpoint("https://push.example/gone"); err != nil {
		t.Fatalf("delete by endpoint: %v", err)
	}

	subs, err := ps.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("got %d subscriptions, want 0", len(subs))
	}
}

func TestPushDeleteScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	ps := NewPushStore(db)

	sub, _ := ps.Subscribe(owner.ID, "https://push.example/mine", "p", "a", "")

	if err := ps.Delete(sub.ID, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	subs, err := ps.ListForUser(owner.ID)
	if err != nil {
		t.Fatalf("list subscriptions: %v", err)
	}
	if len(subs) != 1 {
		t.Error("foreign delete should not remove the subscription")
	}
}
