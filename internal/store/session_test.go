package store

import "testing"

func TestSessionCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	ss := NewSessionStore(db)
	userID := createTestUser(t, db, "alice@example.com")

	sess, err := ss.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != userID {
		t.Errorf("session = %+v, want user %d", got, userID)
	}
}

func TestSessionGetByTokenUnknown(t *testing.T) {
	db := setupTestDB(t)
	ss := NewSessionStore(db)

	sess, err := ss.GetByToken("deadbeef")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionDelete(t *testing.T) {
	db := setupTestDB(t)
	ss := NewSessionStore(db)
	userID := createTestUser(t, db, "alice@example.com")

	sess, err := ss.Create(userID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if err := ss.Delete(sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got != nil {
		t.Error("expected session gone after delete")
	}
}
