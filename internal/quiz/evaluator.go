package quiz

import (
	"context"
	"fmt"
	"math"

	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/platform"
)

// Catalog is the read surface the evaluator needs from the content store.
type Catalog interface {
	GetQuizForScoring(ctx context.Context, id string) (content.Quiz, error)
	QuizzesForScoring(ctx context.Context, topicID string) ([]content.Quiz, error)
}

// ResultLog is the append-only audit log of single-question submissions.
type ResultLog interface {
	Append(ctx context.Context, r Result) error
	ListByUser(ctx context.Context, userID string) ([]Result, error)
}

// Answer is one (quiz, selected option) pair of a topic submission.
type Answer struct {
	QuizID   string `json:"quiz_id"`
	Selected int    `json:"selected_answer"`
}

// ScoreReport is the outcome of evaluating a whole topic submission.
type ScoreReport struct {
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	Passed         bool    `json:"passed"`
}

// SubmissionResult is the outcome of a single-question submission.
type SubmissionResult struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer int    `json:"correct_answer"`
	Explanation   string `json:"explanation,omitempty"`
}

type Evaluator struct {
	catalog   Catalog
	results   ResultLog
	threshold int
}

func NewEvaluator(catalog Catalog, results ResultLog, passThreshold int) *Evaluator {
	if passThreshold <= 0 {
		passThreshold = 60
	}
	return &Evaluator{catalog: catalog, results: results, threshold: passThreshold}
}

// SubmitAnswer checks a single answer, appends one immutable result row and
// reveals the key. Unknown quiz is ErrNotFound; an option index outside the
// quiz's option list is ErrInvalidInput and nothing is written.
func (e *Evaluator) SubmitAnswer(ctx context.Context, userID, quizID string, selected int, timeTakenSec *int) (SubmissionResult, error) {
	q, err := e.catalog.GetQuizForScoring(ctx, quizID)
	if err != nil {
		return SubmissionResult{}, err
	}
	if selected < 0 || selected >= len(q.Options) {
		return SubmissionResult{}, fmt.Errorf("%w: selected option %d out of range for %d options", platform.ErrInvalidInput, selected, len(q.Options))
	}
	res := SubmissionResult{
		IsCorrect:     selected == q.AnswerIndex,
		CorrectAnswer: q.AnswerIndex,
		Explanation:   q.Explanation,
	}
	if err := e.results.Append(ctx, Result{
		UserID:       userID,
		QuizID:       quizID,
		Selected:     selected,
		IsCorrect:    res.IsCorrect,
		TimeTakenSec: timeTakenSec,
	}); err != nil {
		return SubmissionResult{}, err
	}
	return res, nil
}

// EvaluateTopic scores a submission against every quiz of the topic. The
// denominator is the topic's full quiz count, so omitted questions count as
// not-correct. Answers for quizzes that do not exist or belong to another
// topic are skipped, not rejected. When one quiz appears twice in a
// submission the first answer wins. A topic without quizzes is ErrNotFound.
func (e *Evaluator) EvaluateTopic(ctx context.Context, topicID string, answers []Answer) (ScoreReport, error) {
	quizzes, err := e.catalog.QuizzesForScoring(ctx, topicID)
	if err != nil {
		return ScoreReport{}, err
	}
	if len(quizzes) == 0 {
		return ScoreReport{}, fmt.Errorf("topic %s has no quizzes: %w", topicID, platform.ErrNotFound)
	}

	keys := make(map[string]int, len(quizzes))
	for _, q := range quizzes {
		keys[q.ID] = q.AnswerIndex
	}

	correct := 0
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		key, ok := keys[a.QuizID]
		if !ok || seen[a.QuizID] {
			continue
		}
		seen[a.QuizID] = true
		if a.Selected == key {
			correct++
		}
	}

	total := len(quizzes)
	score := math.Round(10000*float64(correct)/float64(total)) / 100
	return ScoreReport{
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: total,
		Passed:         score >= float64(e.threshold),
	}, nil
}

// Results returns the caller's append-only submission log.
func (e *Evaluator) Results(ctx context.Context, userID string) ([]Result, error) {
	return e.results.ListByUser(ctx, userID)
}
