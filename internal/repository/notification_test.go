package repository

import (
	"context"
	"testing"
	"time"
)

func TestNotificationRepository_MarkRead_EmptyIDs(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (int64, error) {
			t.Fatal("expected no exec for empty id list")
			return 0, nil
		},
	}

	repo := NewNotificationRepository(db)
	if err := repo.MarkRead(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNotificationRepository_ListByUser(t *testing.T) {
	now := time.Now()
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			return &fakeRows{rows: [][]any{
				{
					"n1", "u1", "message", "u2", "You received a new message.", false, now,
					"u2", "Bob", "bob@example.com", "",
				},
			}}, nil
		},
	}

	repo := NewNotificationRepository(db)
	notifications, err := repo.ListByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	n := notifications[0]
	if n.Type != "message" || n.IsRead || n.Sender.Name != "Bob" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}
