package seed

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/rights360/rights360/internal/auth"
	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/db"
)

func TestRunIsIdempotent(t *testing.T) {
	dbh, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	ctx := context.Background()
	if err := db.EnsureSchema(ctx, dbh, db.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	store := content.NewSQLStore(dbh)

	if err := Run(ctx, dbh, store); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := Run(ctx, dbh, store); err != nil {
		t.Fatalf("second run: %v", err)
	}

	n, err := store.CountTopics(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 seeded topics, got %d", n)
	}

	var users int
	if err := dbh.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 2 {
		t.Fatalf("expected 2 seeded accounts, got %d", users)
	}

	admin, err := auth.Authenticate(ctx, dbh, "admin", "admin1234")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if admin.Role != "admin" {
		t.Fatalf("admin role %q", admin.Role)
	}
	if _, err := auth.Authenticate(ctx, dbh, "demo", "demo1234"); err != nil {
		t.Fatalf("demo login: %v", err)
	}
}

func TestSeedQuizzesCarryValidKeys(t *testing.T) {
	dbh, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	dbh.SetMaxOpenConns(1)
	ctx := context.Background()
	if err := db.EnsureSchema(ctx, dbh, db.DriverSQLite); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	t.Cleanup(func() { dbh.Close() })
	store := content.NewSQLStore(dbh)

	if err := Run(ctx, dbh, store); err != nil {
		t.Fatalf("run: %v", err)
	}

	quizzes, err := store.QuizzesForScoring(ctx, "topic-fundamental-rights")
	if err != nil {
		t.Fatalf("quizzes: %v", err)
	}
	if len(quizzes) != 5 {
		t.Fatalf("expected 5 quizzes, got %d", len(quizzes))
	}
	for _, q := range quizzes {
		if err := q.Validate(); err != nil {
			t.Errorf("quiz %s invalid after letter conversion: %v", q.ID, err)
		}
	}
}
