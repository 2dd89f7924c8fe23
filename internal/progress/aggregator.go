package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/rights360/rights360/internal/platform"
)

// Record is the single row tracking one user's state for one topic. The
// store keeps at most one row per (user, topic) pair.
type Record struct {
	ID           string  `json:"id"`
	UserID       string  `json:"user_id"`
	TopicID      string  `json:"topic_id"`
	Score        float64 `json:"score"`
	Completed    bool    `json:"completed"`
	LastAccessed int64   `json:"last_accessed"`
	UpdatedAt    int64   `json:"updated_at"`
}

// Summary is the per-user aggregate across the whole catalog.
type Summary struct {
	TotalUnits     int      `json:"total_units"`
	CompletedUnits int      `json:"completed_units"`
	AverageScore   float64  `json:"average_score"`
	Details        []Record `json:"details"`
}

type Store interface {
	Upsert(ctx context.Context, userID, topicID string, score float64, completed bool) (Record, error)
	Touch(ctx context.Context, userID, topicID string) (Record, error)
	List(ctx context.Context, userID string) ([]Record, error)
	Summarize(ctx context.Context, userID string) (Summary, error)
}

// SQLStore implements Store over the shared relational DB. The
// find-or-create race on (user, topic) is closed by the UNIQUE constraint
// plus ON CONFLICT ... DO UPDATE, so two racing submissions both land on
// the same row and the last writer wins.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// Upsert records a completion attempt. Repeating the call with identical
// arguments leaves one row equal to those arguments; a later call with
// different arguments overwrites score and completed.
func (s *SQLStore) Upsert(ctx context.Context, userID, topicID string, score float64, completed bool) (Record, error) {
	if score < 0 || score > 100 {
		return Record{}, fmt.Errorf("%w: score %v outside 0-100", platform.ErrInvalidInput, score)
	}
	if err := s.topicExists(ctx, topicID); err != nil {
		return Record{}, err
	}
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO progress (id,user_id,topic_id,score,completed,last_accessed,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		ON CONFLICT (user_id, topic_id) DO UPDATE SET
			score=EXCLUDED.score, completed=EXCLUDED.completed,
			last_accessed=EXCLUDED.last_accessed, updated_at=EXCLUDED.updated_at`,
		uuid.NewString(), userID, topicID, score, completed, now)
	if err != nil {
		return Record{}, err
	}
	return s.get(ctx, userID, topicID)
}

// Touch creates an untouched 0% row the first time a user opens a topic and
// refreshes last_accessed afterwards, leaving score and completed alone.
func (s *SQLStore) Touch(ctx context.Context, userID, topicID string) (Record, error) {
	if err := s.topicExists(ctx, topicID); err != nil {
		return Record{}, err
	}
	now := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO progress (id,user_id,topic_id,score,completed,last_accessed,updated_at)
		VALUES ($1,$2,$3,0,FALSE,$4,$4)
		ON CONFLICT (user_id, topic_id) DO UPDATE SET last_accessed=EXCLUDED.last_accessed`,
		uuid.NewString(), userID, topicID, now)
	if err != nil {
		return Record{}, err
	}
	return s.get(ctx, userID, topicID)
}

func (s *SQLStore) List(ctx context.Context, userID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,user_id,topic_id,score,completed,last_accessed,updated_at
		FROM progress WHERE user_id=$1 ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Record{}
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.TopicID, &rec.Score, &rec.Completed, &rec.LastAccessed, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Summarize reports totals across the whole catalog: TotalUnits counts every
// published topic whether or not the user touched it, CompletedUnits and
// AverageScore cover only the user's existing rows. The average excludes
// untouched topics rather than treating them as zero, is 0 with no rows,
// and is rounded to 2 decimals for display.
func (s *SQLStore) Summarize(ctx context.Context, userID string) (Summary, error) {
	var sum Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics WHERE published=TRUE`).Scan(&sum.TotalUnits); err != nil {
		return Summary{}, err
	}
	details, err := s.List(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	sum.Details = details
	total := 0.0
	for _, rec := range details {
		if rec.Completed {
			sum.CompletedUnits++
		}
		total += rec.Score
	}
	if len(details) > 0 {
		sum.AverageScore = math.Round(100*total/float64(len(details))) / 100
	}
	return sum, nil
}

func (s *SQLStore) get(ctx context.Context, userID, topicID string) (Record, error) {
	var rec Record
	err := s.db.QueryRowContext(ctx, `SELECT id,user_id,topic_id,score,completed,last_accessed,updated_at
		FROM progress WHERE user_id=$1 AND topic_id=$2`, userID, topicID).
		Scan(&rec.ID, &rec.UserID, &rec.TopicID, &rec.Score, &rec.Completed, &rec.LastAccessed, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, fmt.Errorf("progress: %w", platform.ErrNotFound)
		}
		return Record{}, err
	}
	return rec, nil
}

func (s *SQLStore) topicExists(ctx context.Context, topicID string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM topics WHERE id=$1`, topicID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("topic: %w", platform.ErrNotFound)
		}
		return err
	}
	return nil
}
