package store

import (
	"fmt"
	"testing"
)

func TestBoardCreateAssignsDensePositions(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	for i, title := range []string{"Alpha", "Beta", "Gamma"} {
		b, err := bs.Create(user.ID, title, "", "")
		if err != nil {
			t.Fatalf("create board: %v", err)
		}
		if b.Position != i {
			t.Errorf("board %q position = %d, want %d", title, b.Position, i)
		}
	}
}

func TestBoardFirstInEmptyScopeGetsZero(t *testing.T) {
	db := setupTestDB(t)
	u1 := createTestUser(t, db, "a@example.com")
	u2 := createTestUser(t, db, "b@example.com")
	bs := NewBoardStore(db)

	// Other users' boards must not shift the starting rank.
	for i := 0; i < 3; i++ {
		if _, err := bs.Create(u1.ID, "noise", "", ""); err != nil {
			t.Fatalf("create board: %v", err)
		}
	}

	b, err := bs.Create(u2.ID, "First", "", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	if b.Position != 0 {
		t.Errorf("first board in empty scope position = %d, want 0", b.Position)
	}
}

func TestBoardReorderRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	var ids []int64
	for _, title := range []string{"b1", "b2", "b3"} {
		b, err := bs.Create(user.ID, title, "", "")
		if err != nil {
			t.Fatalf("create board: %v", err)
		}
		ids = append(ids, b.ID)
	}

	// [b3, b1, b2] -> positions 0, 1, 2
	if err := bs.Reorder(user.ID, []int64{ids[2], ids[0], ids[1]}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	boards, err := bs.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	want := []string{"b3", "b1", "b2"}
	for i, b := range boards {
		if b.Title != want[i] {
			t.Errorf("boards[%d] = %q, want %q", i, b.Title, want[i])
		}
		if b.Position != i {
			t.Errorf("boards[%d] position = %d, want %d", i, b.Position, i)
		}
	}
}

func TestBoardReorderIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	var ids []int64
	for _, title := range []string{"b1", "b2", "b3"} {
		b, err := bs.Create(user.ID, title, "", "")
		if err != nil {
			t.Fatalf("create board: %v", err)
		}
		ids = append(ids, b.ID)
	}

	order := []int64{ids[1], ids[2], ids[0]}
	for i := 0; i < 2; i++ {
		if err := bs.Reorder(user.ID, order); err != nil {
			t.Fatalf("reorder pass %d: %v", i+1, err)
		}
	}

	boards, err := bs.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	want := []string{"b2", "b3", "b1"}
	for i, b := range boards {
		if b.Title != want[i] {
			t.Errorf("boards[%d] = %q, want %q", i, b.Title, want[i])
		}
	}
}

func TestBoardReorderSkipsForeignIDs(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	bs := NewBoardStore(db)

	ownerBoard, err := bs.Create(owner.ID, "Mine", "", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}
	foreign, err := bs.Create(intruder.ID, "Theirs", "", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	// The foreign id is silently skipped; the owned id still gets its index.
	if err := bs.Reorder(owner.ID, []int64{foreign.ID, ownerBoard.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	got, err := bs.GetForUser(ownerBoard.ID, owner.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if got.Position != 1 {
		t.Errorf("owned board position = %d, want 1", got.Position)
	}

	untouched, err := bs.GetForUser(foreign.ID, intruder.ID)
	if err != nil {
		t.Fatalf("get foreign board: %v", err)
	}
	if untouched.Position != 0 {
		t.Errorf("foreign board position = %d, want 0 (unchanged)", untouched.Position)
	}
}

func TestBoardReorderEmptyIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	if err := bs.Reorder(user.ID, nil); err != nil {
		t.Fatalf("reorder with no ids: %v", err)
	}
}

func TestBoardOwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")
	bs := NewBoardStore(db)

	b, err := bs.Create(owner.ID, "Private", "", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	got, err := bs.GetForUser(b.ID, other.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if got != nil {
		t.Error("other user should not see the board")
	}

	if err := bs.Delete(b.ID, other.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	still, err := bs.GetForUser(b.ID, owner.ID)
	if err != nil {
		t.Fatalf("get board: %v", err)
	}
	if still == nil {
		t.Error("foreign delete should not remove the board")
	}
}

func TestBoardUpdate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	b, err := bs.Create(user.ID, "Old", "desc", "")
	if err != nil {
		t.Fatalf("create board: %v", err)
	}

	updated, err := bs.Update(b.ID, user.ID, "New", "new desc", "https://img.example/x.png")
	if err != nil {
		t.Fatalf("update board: %v", err)
	}
	if updated.Title != "New" || updated.Description != "new desc" {
		t.Errorf("updated = %+v, want new title and description", updated)
	}
	if updated.ImageURL != "https://img.example/x.png" {
		t.Errorf("image url = %q", updated.ImageURL)
	}
}

func TestBoardReorderLargeBatchOnFileDatabase(t *testing.T) {
	db := setupFileTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	bs := NewBoardStore(db)

	var ids []int64
	for i := 0; i < 100; i++ {
		b, err := bs.Create(user.ID, fmt.Sprintf("board %d", i), "", "")
		if err != nil {
			t.Fatalf("create board: %v", err)
		}
		ids = append(ids, b.ID)
	}

	reversed := make([]int64, len(ids))
	for i, id := range ids {
		reversed[len(ids)-1-i] = id
	}

	if err := bs.Reorder(user.ID, reversed); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	boards, err := bs.ListForUser(user.ID)
	if err != nil {
		t.Fatalf("list boards: %v", err)
	}
	if len(boards) != len(reversed) {
		t.Fatalf("listed %d boards, want %d", len(boards), len(reversed))
	}
	for i, b := range boards {
		if b.ID != reversed[i] {
			t.Fatalf("boards[%d].ID = %d, want %d", i, b.ID, reversed[i])
		}
		if b.Position != i {
			t.Errorf("boards[%d] position = %d, want %d", i, b.Position, i)
		}
	}
}
