package content

import (
	"fmt"

	"github.com/rights360/rights360/internal/platform"
)

// Topic is one unit of legal-literacy content with an associated quiz set.
type Topic struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Difficulty  string   `json:"difficulty"` // beginner, intermediate, advanced
	Tags        []string `json:"tags,omitempty"`
	Published   bool     `json:"published"`
	CreatedAt   int64    `json:"created_at,omitempty"`
	UpdatedAt   int64    `json:"updated_at,omitempty"`
}

// Quiz is a single multiple-choice question. AnswerIndex is the canonical
// 0-based index into Options; it is stripped on student-facing reads.
type Quiz struct {
	ID          string   `json:"id"`
	TopicID     string   `json:"topic_id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty"` // easy, medium, hard
	CreatedAt   int64    `json:"created_at,omitempty"`
}

// Validate checks the invariants enforced at write time: at least two
// options and an answer index that references an existing option.
func (q Quiz) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("%w: question required", platform.ErrInvalidInput)
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("%w: need at least 2 options, got %d", platform.ErrInvalidInput, len(q.Options))
	}
	if q.AnswerIndex < 0 || q.AnswerIndex >= len(q.Options) {
		return fmt.Errorf("%w: answer index %d out of range for %d options", platform.ErrInvalidInput, q.AnswerIndex, len(q.Options))
	}
	return nil
}

// LetterToIndex converts a legacy letter-coded answer ("A".."D", case
// insensitive) to the canonical 0-based index, bounds-checked against the
// option count. Older seed data uses letters; stored rows are always
// numeric.
func LetterToIndex(letter string, optionCount int) (int, error) {
	if len(letter) != 1 {
		return 0, fmt.Errorf("%w: answer letter %q", platform.ErrInvalidInput, letter)
	}
	c := letter[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return 0, fmt.Errorf("%w: answer letter %q", platform.ErrInvalidInput, letter)
	}
	idx := int(c - 'A')
	if idx >= optionCount {
		return 0, fmt.Errorf("%w: answer letter %q exceeds %d options", platform.ErrInvalidInput, letter, optionCount)
	}
	return idx, nil
}

// Filter narrows topic listings.
type Filter struct {
	Category      string
	Difficulty    string
	PublishedOnly bool
}
