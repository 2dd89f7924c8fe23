package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rights360/rights360/internal/db"
	"github.com/rights360/rights360/internal/platform"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbh, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	if err := db.EnsureSchema(context.Background(), dbh, db.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	return dbh
}

func TestRegisterAndAuthenticate(t *testing.T) {
	dbh := openTestDB(t)
	ctx := context.Background()

	u, err := Register(ctx, dbh, "alice", " Alice@Example.ORG ", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Role != "user" {
		t.Fatalf("new accounts must default to role user, got %q", u.Role)
	}
	if u.Email != "alice@example.org" {
		t.Fatalf("email must be trimmed and lowercased, got %q", u.Email)
	}

	byName, err := Authenticate(ctx, dbh, "alice", "hunter22")
	if err != nil {
		t.Fatalf("login by username: %v", err)
	}
	byEmail, err := Authenticate(ctx, dbh, "Alice@Example.ORG", "hunter22")
	if err != nil {
		t.Fatalf("login by email: %v", err)
	}
	if byName.ID != u.ID || byEmail.ID != u.ID {
		t.Fatalf("logins resolved to different accounts: %s %s %s", u.ID, byName.ID, byEmail.ID)
	}
}

func TestRegisterValidation(t *testing.T) {
	dbh := openTestDB(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"blank username", "", "a@b.org", "longenough"},
		{"blank email", "bob", "", "longenough"},
		{"malformed email", "bob", "not-an-email", "longenough"},
		{"short password", "bob", "bob@b.org", "tiny"},
	}
	for _, tc := range cases {
		if _, err := Register(ctx, dbh, tc.username, tc.email, tc.password); !errors.Is(err, platform.ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	dbh := openTestDB(t)
	ctx := context.Background()

	if _, err := Register(ctx, dbh, "alice", "alice@example.org", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := Register(ctx, dbh, "alice", "other@example.org", "hunter22"); !errors.Is(err, platform.ErrConflict) {
		t.Fatalf("duplicate username: expected ErrConflict, got %v", err)
	}
	if _, err := Register(ctx, dbh, "other", "alice@example.org", "hunter22"); !errors.Is(err, platform.ErrConflict) {
		t.Fatalf("duplicate email: expected ErrConflict, got %v", err)
	}
}

func TestAuthenticateBadCredentials(t *testing.T) {
	dbh := openTestDB(t)
	ctx := context.Background()

	if _, err := Register(ctx, dbh, "alice", "alice@example.org", "hunter22"); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Wrong password and unknown account look identical to the caller.
	if _, err := Authenticate(ctx, dbh, "alice", "wrongpass"); !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("wrong password: expected ErrNotFound, got %v", err)
	}
	if _, err := Authenticate(ctx, dbh, "nobody", "hunter22"); !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("unknown account: expected ErrNotFound, got %v", err)
	}
}

func TestGetUser(t *testing.T) {
	dbh := openTestDB(t)
	ctx := context.Background()

	u, err := Register(ctx, dbh, "alice", "alice@example.org", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := GetUser(ctx, dbh, u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if _, err := GetUser(ctx, dbh, "missing"); !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	tok, err := svc.IssueToken("user-1", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := svc.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Sub != "user-1" || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "rights360" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
}

func TestTokenRejectsWrongSecretAndExpiry(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	other := NewService("other-secret", time.Hour)

	tok, err := svc.IssueToken("user-1", "user")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Parse(tok); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}

	// Expired token signed with the right secret.
	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Sub:  "user-1",
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rights360",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	if _, err := svc.Parse(tok); err == nil {
		t.Fatal("expired token must not parse")
	}
}
