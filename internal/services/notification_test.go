package services

import (
	"context"
	"errors"
	"testing"

	"social-chat-backend/internal/repository"
)

func TestNotificationService_List_MissingUserID(t *testing.T) {
	svc := NewNotificationService(repository.NewNotificationRepository(&fakeDB{}))
	_, err := svc.List(context.Background(), "")
	if !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("expected ErrMissingUserID, got %v", err)
	}
}

func TestNotificationService_MarkRead_EmptyIDs(t *testing.T) {
	db := &fakeDB{
		ExecFunc: func(ctx context.Context, sql string, args ...any) (int64, error) {
			t.Fatal("expected no exec for empty id list")
			return 0, nil
		},
	}

	svc := NewNotificationService(repository.NewNotificationRepository(db))
	if err := svc.MarkRead(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
