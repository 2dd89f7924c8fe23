package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

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

func seedUser(t *testing.T, dbh *sql.DB, id string) {
	t.Helper()
	_, err := dbh.Exec(`INSERT INTO users (id,username,email,password_hash,role,created_at) VALUES ($1,$1,$2,'x','user',$3)`,
		id, id+"@example.org", time.Now().Unix())
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func seedTopic(t *testing.T, dbh *sql.DB, id string, published bool) {
	t.Helper()
	now := time.Now().Unix()
	_, err := dbh.Exec(`INSERT INTO topics (id,title,slug,description,content,category,difficulty,tags_json,published,created_at,updated_at)
		VALUES ($1,$1,$1,'','body','general','beginner','[]',$2,$3,$3)`, id, published, now)
	if err != nil {
		t.Fatalf("seed topic: %v", err)
	}
}

func TestUpsertIsIdempotent(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	first, err := store.Upsert(ctx, "u1", "t1", 80, true)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := store.Upsert(ctx, "u1", "t1", 80, true)
	if err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("repeat upsert created a new row: %s vs %s", first.ID, second.ID)
	}
	recs, err := store.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || recs[0].Score != 80 || !recs[0].Completed {
		t.Fatalf("expected single 80/completed row, got %+v", recs)
	}
}

func TestUpsertLastWriteWins(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "u1", "t1", 80, true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, err := store.Upsert(ctx, "u1", "t1", 40, false)
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if rec.Score != 40 || rec.Completed {
		t.Fatalf("expected overwrite to 40/incomplete, got %+v", rec)
	}
	recs, _ := store.List(ctx, "u1")
	if len(recs) != 1 {
		t.Fatalf("expected one row after overwrite, got %d", len(recs))
	}
}

func TestUpsertValidation(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "u1", "t1", 101, true); !errors.Is(err, platform.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for score 101, got %v", err)
	}
	if _, err := store.Upsert(ctx, "u1", "t1", -1, true); !errors.Is(err, platform.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for score -1, got %v", err)
	}
	if _, err := store.Upsert(ctx, "u1", "missing", 50, false); !errors.Is(err, platform.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown topic, got %v", err)
	}
}

func TestTouchCreatesThenRefreshes(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	rec, err := store.Touch(ctx, "u1", "t1")
	if err != nil {
		t.Fatalf("touch: %v", err)
	}
	if rec.Score != 0 || rec.Completed {
		t.Fatalf("fresh row must start at 0/incomplete, got %+v", rec)
	}

	if _, err := store.Upsert(ctx, "u1", "t1", 90, true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rec, err = store.Touch(ctx, "u1", "t1")
	if err != nil {
		t.Fatalf("second touch: %v", err)
	}
	if rec.Score != 90 || !rec.Completed {
		t.Fatalf("touch must not reset score or completed, got %+v", rec)
	}
}

func TestSummarizeEmptyUser(t *testing.T) {
	dbh := openTestDB(t)
	seedTopic(t, dbh, "t1", true)
	seedTopic(t, dbh, "t2", true)
	store := NewSQLStore(dbh)

	sum, err := store.Summarize(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.TotalUnits != 2 || sum.CompletedUnits != 0 || sum.AverageScore != 0 || len(sum.Details) != 0 {
		t.Fatalf("unexpected empty summary: %+v", sum)
	}
}

func TestSummarizeCountsAndAverage(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	seedTopic(t, dbh, "t2", true)
	seedTopic(t, dbh, "t3", true)
	seedTopic(t, dbh, "draft", false)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	if _, err := store.Upsert(ctx, "u1", "t1", 70, true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := store.Upsert(ctx, "u1", "t2", 35.5, false); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	sum, err := store.Summarize(ctx, "u1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	// Drafts stay out of TotalUnits; the untouched t3 stays out of the average.
	if sum.TotalUnits != 3 {
		t.Fatalf("expected 3 published units, got %d", sum.TotalUnits)
	}
	if sum.CompletedUnits != 1 {
		t.Fatalf("expected 1 completed unit, got %d", sum.CompletedUnits)
	}
	if sum.AverageScore != 52.75 {
		t.Fatalf("expected average 52.75, got %v", sum.AverageScore)
	}
	if len(sum.Details) != 2 {
		t.Fatalf("expected 2 detail rows, got %d", len(sum.Details))
	}
}

func TestSummarizeRoundsAverage(t *testing.T) {
	dbh := openTestDB(t)
	seedUser(t, dbh, "u1")
	seedTopic(t, dbh, "t1", true)
	seedTopic(t, dbh, "t2", true)
	seedTopic(t, dbh, "t3", true)
	store := NewSQLStore(dbh)
	ctx := context.Background()

	for _, tc := range []struct {
		topic string
		score float64
	}{{"t1", 70}, {"t2", 80}, {"t3", 60}} {
		if _, err := store.Upsert(ctx, "u1", tc.topic, tc.score, true); err != nil {
			t.Fatalf("upsert %s: %v", tc.topic, err)
		}
	}
	sum, err := store.Summarize(ctx, "u1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	// (70+80+60)/3 = 70 exactly; replace t3 to force a repeating decimal.
	if sum.AverageScore != 70 {
		t.Fatalf("expected 70, got %v", sum.AverageScore)
	}
	if _, err := store.Upsert(ctx, "u1", "t3", 61, true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	sum, err = store.Summarize(ctx, "u1")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if sum.AverageScore != 70.33 {
		t.Fatalf("expected 70.33, got %v", sum.AverageScore)
	}
}
