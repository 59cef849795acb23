package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"social-chat-backend/internal/repository"
)

type fakeBlobStore struct {
	url string
	err error
}

func (f *fakeBlobStore) Store(ctx context.Context, data []byte, folder, filename string) (string, error) {
	return f.url, f.err
}

func TestUserService_Register_MissingFields(t *testing.T) {
	svc := NewUserService(repository.NewUserRepository(&fakeDB{}), nil, "secret")
	_, _, err := svc.Register(context.Background(), RegisterParams{Name: "Alice"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) repository.Row {
			return rowFromValues(true)
		},
	}

	svc := NewUserService(repository.NewUserRepository(db), nil, "secret")
	_, _, err := svc.Register(context.Background(), RegisterParams{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
	})
	if !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Register_IssuesValidToken(t *testing.T) {
	var insertArgs []any
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) repository.Row {
			return rowFromValues(false)
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (int64, error) {
			insertArgs = args
			return 1, nil
		},
	}

	svc := NewUserService(repository.NewUserRepository(db), nil, "secret")
	user, token, err := svc.Register(context.Background(), RegisterParams{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if len(insertArgs) == 0 {
		t.Fatal("expected user insert")
	}

	// The stored hash must not be the plaintext password.
	hash, _ := insertArgs[3].(string)
	if hash == "pw" || hash == "" {
		t.Fatalf("expected a password hash, got %q", hash)
	}

	userID, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected token subject %s, got %s", user.ID, userID)
	}
}

func TestUserService_Register_BlobStoreFailureNonFatal(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) repository.Row {
			return rowFromValues(false)
		},
		ExecFunc: func(ctx context.Context, sql string, args ...any) (int64, error) {
			return 1, nil
		},
	}

	store := &fakeBlobStore{err: errors.New("bucket unavailable")}
	svc := NewUserService(repository.NewUserRepository(db), store, "secret")
	user, _, err := svc.Register(context.Background(), RegisterParams{
		Name: "Alice", Email: "alice@example.com", Password: "pw",
		ProfilePic: []byte("jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("blob store failure must not fail registration: %v", err)
	}
	if user.ProfilePicURL != "" {
		t.Fatalf("expected empty picture URL, got %q", user.ProfilePicURL)
	}
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) repository.Row {
			if !strings.Contains(sql, "email") {
				t.Fatalf("unexpected sql: %q", sql)
			}
			return rowFromValues("u1", "Alice", "alice@example.com", string(hash), "", nil)
		},
	}

	svc := NewUserService(repository.NewUserRepository(db), nil, "secret")
	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	db := &fakeDB{
		QueryRowFunc: func(ctx context.Context, sql string, args ...any) repository.Row {
			return rowWithErr(pgx.ErrNoRows)
		},
	}

	svc := NewUserService(repository.NewUserRepository(db), nil, "secret")
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewUserService(nil, nil, "secret-a")
	verifier := NewUserService(nil, nil, "secret-b")

	token, err := issuer.GenerateToken("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different secret")
	}
}
