package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"climate_station/internal/models"
	"climate_station/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

const testKey = "test-signing-key"

type mockAuthRepo struct {
	CreateFn        func(username, hash string) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)

	createdHashes []string
}

func (m *mockAuthRepo) Create(ctx context.Context, username, hash string) (int, error) {
	m.createdHashes = append(m.createdHashes, hash)
	return m.CreateFn(username, hash)
}

func (m *mockAuthRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.GetByUsernameFn(username)
}

func newAuth(repo *mockAuthRepo) *AuthService {
	return NewAuthService(repo, AuthOptions{SigningKey: testKey, TokenTTL: time.Minute})
}

func TestAuthService_SignUp_HashesPassword(t *testing.T) {
	repo := &mockAuthRepo{CreateFn: func(username, hash string) (int, error) { return 42, nil }}

	id, err := newAuth(repo).SignUp(context.Background(), "operator", "s3cr3t")
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}
	if len(repo.createdHashes) != 1 || repo.createdHashes[0] == "s3cr3t" {
		t.Fatalf("expected one hashed password, got %v", repo.createdHashes)
	}
	if err := verifyPassword(repo.createdHashes[0], "s3cr3t"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestAuthService_SignUp_Rejects(t *testing.T) {
	repo := &mockAuthRepo{CreateFn: func(username, hash string) (int, error) {
		t.Fatal("Create must not be called")
		return 0, nil
	}}
	svc := newAuth(repo)

	if _, err := svc.SignUp(context.Background(), "operator", "   "); err == nil {
		t.Fatal("expected error for empty password")
	}
	if _, err := svc.SignUp(context.Background(), " ", "pw"); !errors.Is(err, ErrUsernameEmpty) {
		t.Fatalf("expected ErrUsernameEmpty, got %v", err)
	}
}

func TestAuthService_SignUp_DuplicateOperator(t *testing.T) {
	repo := &mockAuthRepo{CreateFn: func(username, hash string) (int, error) {
		return 0, fmt.Errorf("%w: %q", repository.ErrOperatorExists, username)
	}}

	_, err := newAuth(repo).SignUp(context.Background(), "operator", "pw")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_GenerateAndParseToken(t *testing.T) {
	hash, err := hashPassword("pw")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	repo := &mockAuthRepo{GetByUsernameFn: func(username string) (*models.User, error) {
		if username != "operator" {
			return nil, nil
		}
		return &models.User{ID: 5, Username: username, PasswordHash: hash}, nil
	}}
	svc := newAuth(repo)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, "operator", "pw")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	id, err := svc.ParseToken(token)
	if err != nil || id != 5 {
		t.Fatalf("ParseToken = %d, %v; want 5, nil", id, err)
	}

	if _, err := svc.GenerateToken(ctx, "ghost", "pw"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.GenerateToken(ctx, "operator", "wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestAuthService_GenerateToken_RepoError(t *testing.T) {
	boom := errors.New("db down")
	repo := &mockAuthRepo{GetByUsernameFn: func(string) (*models.User, error) { return nil, boom }}
	if _, err := newAuth(repo).GenerateToken(context.Background(), "x", "y"); !errors.Is(err, boom) {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestAuthService_ParseToken_Failures(t *testing.T) {
	svc := newAuth(&mockAuthRepo{})

	expired, err := svc.issueToken(1, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	foreign, err := NewAuthService(&mockAuthRepo{}, AuthOptions{SigningKey: "other"}).issueToken(1, time.Now())
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	for name, token := range map[string]string{
		"malformed":         "not-a-token",
		"expired":           expired,
		"invalid signature": foreign,
		"unexpected alg":    none,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.ParseToken(token); err == nil {
				t.Fatalf("expected error for %s token", name)
			}
		})
	}
}
