package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowWithErr(pgx.ErrNoRows)
		},
	}

	repo := NewUserRepository(db)
	_, err := repo.GetByID(context.Background(), "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_ListDiscoverable(t *testing.T) {
	var gotArgs []any
	db := &fakeDB{
		QueryFunc: func(ctx context.Context, sql string, args ...any) (Rows, error) {
			gotArgs = args
			return &fakeRows{rows: [][]any{
				{"u2", "Bob", "bob@example.com", ""},
				{"u3", "Carol", "carol@example.com", "https://pics/carol.jpg"},
			}}, nil
		},
	}

	repo := NewUserRepository(db)
	profiles, err := repo.ListDiscoverable(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotArgs) != 1 || gotArgs[0] != "u1" {
		t.Fatalf("expected userID arg, got %v", gotArgs)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].ID != "u2" || profiles[1].Name != "Carol" {
		t.Fatalf("unexpected profiles: %+v", profiles)
	}
}

func TestUserRepository_EmailExists(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) Row {
			return rowFromValues(true)
		},
	}

	repo := NewUserRepository(db)
	exists, err := repo.EmailExists(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Fatal("expected email to exist")
	}
}
