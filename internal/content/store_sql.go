package content

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rights360/rights360/internal/platform"
)

// Store is the read/write surface over topics and quizzes. Read methods
// used by student-facing handlers return quizzes without answer keys;
// the evaluator uses the *ForScoring variants.
type Store interface {
	ListTopics(ctx context.Context, f Filter) ([]Topic, error)
	GetTopic(ctx context.Context, id string) (Topic, error)
	GetTopicBySlug(ctx context.Context, slug string) (Topic, error)
	CountTopics(ctx context.Context) (int, error)
	Categories(ctx context.Context) ([]string, error)
	PutTopic(ctx context.Context, t Topic) error

	ListQuizzes(ctx context.Context, topicID, difficulty string, limit int) ([]Quiz, error)
	RandomQuiz(ctx context.Context, topicID, difficulty string) (Quiz, error)
	GetQuizForScoring(ctx context.Context, id string) (Quiz, error)
	QuizzesForScoring(ctx context.Context, topicID string) ([]Quiz, error)
	PutQuiz(ctx context.Context, q Quiz) error
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) ListTopics(ctx context.Context, f Filter) ([]Topic, error) {
	q := `SELECT id,title,slug,description,content,category,difficulty,tags_json,published,created_at,updated_at FROM topics WHERE 1=1`
	args := []any{}
	n := 0
	if f.PublishedOnly {
		q += ` AND published=TRUE`
	}
	if f.Category != "" {
		n++
		q += fmt.Sprintf(` AND category=$%d`, n)
		args = append(args, f.Category)
	}
	if f.Difficulty != "" {
		n++
		q += fmt.Sprintf(` AND difficulty=$%d`, n)
		args = append(args, f.Difficulty)
	}
	q += ` ORDER BY title`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []Topic{}
	for rows.Next() {
		t, err := scanTopic(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) GetTopic(ctx context.Context, id string) (Topic, error) {
	return s.getTopic(ctx, `id=$1`, id)
}

func (s *SQLStore) GetTopicBySlug(ctx context.Context, slug string) (Topic, error) {
	return s.getTopic(ctx, `slug=$1 AND published=TRUE`, slug)
}

func (s *SQLStore) getTopic(ctx context.Context, where string, arg any) (Topic, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,title,slug,description,content,category,difficulty,tags_json,published,created_at,updated_at FROM topics WHERE `+where, arg)
	t, err := scanTopic(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Topic{}, fmt.Errorf("topic: %w", platform.ErrNotFound)
		}
		return Topic{}, mapErr(err)
	}
	return t, nil
}

func (s *SQLStore) CountTopics(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics WHERE published=TRUE`).Scan(&n); err != nil {
		return 0, mapErr(err)
	}
	return n, nil
}

func (s *SQLStore) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM topics WHERE published=TRUE ORDER BY category`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutTopic(ctx context.Context, t Topic) error {
	if t.ID == "" || t.Title == "" || t.Slug == "" || t.Category == "" {
		return fmt.Errorf("%w: topic id, title, slug and category required", platform.ErrInvalidInput)
	}
	tags, err := json.Marshal(t.Tags)
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `INSERT INTO topics (id,title,slug,description,content,category,difficulty,tags_json,published,created_at,updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, slug=EXCLUDED.slug, description=EXCLUDED.description,
			content=EXCLUDED.content, category=EXCLUDED.category, difficulty=EXCLUDED.difficulty,
			tags_json=EXCLUDED.tags_json, published=EXCLUDED.published, updated_at=EXCLUDED.updated_at`,
		t.ID, t.Title, t.Slug, t.Description, t.Content, t.Category, t.Difficulty, string(tags), t.Published, now, now)
	return mapErr(err)
}

func (s *SQLStore) ListQuizzes(ctx context.Context, topicID, difficulty string, limit int) ([]Quiz, error) {
	// Referencing an unknown topic is NotFound, not an empty list.
	if _, err := s.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	q := `SELECT id,topic_id,question,options_json,answer_index,explanation,difficulty,created_at FROM quizzes WHERE topic_id=$1`
	args := []any{topicID}
	if difficulty != "" {
		q += ` AND difficulty=$2`
		args = append(args, difficulty)
	}
	q += fmt.Sprintf(` ORDER BY created_at LIMIT %d`, limit)

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		qu, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stripKey(qu))
	}
	return out, rows.Err()
}

func (s *SQLStore) RandomQuiz(ctx context.Context, topicID, difficulty string) (Quiz, error) {
	q := `SELECT id,topic_id,question,options_json,answer_index,explanation,difficulty,created_at FROM quizzes WHERE 1=1`
	args := []any{}
	n := 0
	if topicID != "" {
		if _, err := s.GetTopic(ctx, topicID); err != nil {
			return Quiz{}, err
		}
		n++
		q += fmt.Sprintf(` AND topic_id=$%d`, n)
		args = append(args, topicID)
	}
	if difficulty != "" {
		n++
		q += fmt.Sprintf(` AND difficulty=$%d`, n)
		args = append(args, difficulty)
	}
	q += ` ORDER BY RANDOM() LIMIT 1`
	row := s.db.QueryRowContext(ctx, q, args...)
	qu, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, fmt.Errorf("quiz: %w", platform.ErrNotFound)
		}
		return Quiz{}, mapErr(err)
	}
	return stripKey(qu), nil
}

func (s *SQLStore) GetQuizForScoring(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,topic_id,question,options_json,answer_index,explanation,difficulty,created_at FROM quizzes WHERE id=$1`, id)
	q, err := scanQuiz(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, fmt.Errorf("quiz: %w", platform.ErrNotFound)
		}
		return Quiz{}, mapErr(err)
	}
	return q, nil
}

func (s *SQLStore) QuizzesForScoring(ctx context.Context, topicID string) ([]Quiz, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,question,options_json,answer_index,explanation,difficulty,created_at FROM quizzes WHERE topic_id=$1 ORDER BY created_at`, topicID)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()
	out := []Quiz{}
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *SQLStore) PutQuiz(ctx context.Context, q Quiz) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, err := s.GetTopic(ctx, q.TopicID); err != nil {
		return err
	}
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return err
	}
	if q.Difficulty == "" {
		q.Difficulty = "easy"
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,topic_id,question,options_json,answer_index,explanation,difficulty,created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (id) DO UPDATE SET question=EXCLUDED.question, options_json=EXCLUDED.options_json,
			answer_index=EXCLUDED.answer_index, explanation=EXCLUDED.explanation, difficulty=EXCLUDED.difficulty`,
		q.ID, q.TopicID, q.Question, string(opts), q.AnswerIndex, q.Explanation, q.Difficulty, time.Now().Unix())
	return mapErr(err)
}

type scanner interface{ Scan(dest ...any) error }

func scanTopic(row scanner) (Topic, error) {
	var t Topic
	var tags string
	if err := row.Scan(&t.ID, &t.Title, &t.Slug, &t.Description, &t.Content, &t.Category, &t.Difficulty, &tags, &t.Published, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return Topic{}, err
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		t.Tags = nil
	}
	return t, nil
}

func scanQuiz(row scanner) (Quiz, error) {
	var q Quiz
	var opts string
	if err := row.Scan(&q.ID, &q.TopicID, &q.Question, &opts, &q.AnswerIndex, &q.Explanation, &q.Difficulty, &q.CreatedAt); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
		return Quiz{}, err
	}
	return q, nil
}

// stripKey removes the answer key and explanation before a quiz leaves a
// student-facing read path.
func stripKey(q Quiz) Quiz {
	q.AnswerIndex = 0
	q.Explanation = ""
	return q
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", platform.ErrUnavailable, err)
	}
	return err
}
