package quiz

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Result is one row of the submission audit log. Rows are append-only and
// never mutated.
type Result struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	QuizID       string `json:"quiz_id"`
	Selected     int    `json:"selected_answer"`
	IsCorrect    bool   `json:"is_correct"`
	TimeTakenSec *int   `json:"time_taken,omitempty"`
	CreatedAt    int64  `json:"created_at"`
}

type SQLResultLog struct {
	db *sql.DB
}

func NewSQLResultLog(db *sql.DB) *SQLResultLog { return &SQLResultLog{db: db} }

func (l *SQLResultLog) Append(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt == 0 {
		r.CreatedAt = time.Now().Unix()
	}
	var tt sql.NullInt64
	if r.TimeTakenSec != nil {
		tt = sql.NullInt64{Int64: int64(*r.TimeTakenSec), Valid: true}
	}
	_, err := l.db.ExecContext(ctx, `INSERT INTO quiz_results (id,user_id,quiz_id,selected_index,is_correct,time_taken_sec,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		r.ID, r.UserID, r.QuizID, r.Selected, r.IsCorrect, tt, r.CreatedAt)
	return err
}

func (l *SQLResultLog) ListByUser(ctx context.Context, userID string) ([]Result, error) {
	rows, err := l.db.QueryContext(ctx, `SELECT id,user_id,quiz_id,selected_index,is_correct,time_taken_sec,created_at
		FROM quiz_results WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Result{}
	for rows.Next() {
		var r Result
		var tt sql.NullInt64
		if err := rows.Scan(&r.ID, &r.UserID, &r.QuizID, &r.Selected, &r.IsCorrect, &tt, &r.CreatedAt); err != nil {
			return nil, err
		}
		if tt.Valid {
			v := int(tt.Int64)
			r.TimeTakenSec = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
