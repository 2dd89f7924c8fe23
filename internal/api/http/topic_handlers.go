package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rights360/rights360/internal/cache"
	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/progress"
	"github.com/rights360/rights360/internal/rbac"
)

// GET /api/legal/topics?category=&difficulty=. Public catalog, served
// through the topic cache.
func ListTopicsHandler(topics cache.TopicSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := content.Filter{
			Category:      r.URL.Query().Get("category"),
			Difficulty:    r.URL.Query().Get("difficulty"),
			PublishedOnly: true,
		}
		list, err := topics.ListTopics(r.Context(), f)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, list)
	}
}

// GET /api/legal/topics/{slug}. Also records that the requester opened the
// topic (first open creates the 0% progress row).
func GetTopicHandler(store content.Store, prog progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		t, err := store.GetTopicBySlug(r.Context(), slug)
		if err != nil {
			writeErr(w, err)
			return
		}
		if sub := rbac.SubjectFromContext(r.Context()); sub != "" {
			if _, err := prog.Touch(r.Context(), sub, t.ID); err != nil {
				writeErr(w, err)
				return
			}
		}
		writeJSON(w, t)
	}
}

// GET /api/legal/categories
func CategoriesHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := store.Categories(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, cats)
	}
}

// POST /api/legal/topics/{topicID}/progress {"progress_percentage":..,"completed":..}
func UpdateProgressHandler(prog progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID := chi.URLParam(r, "topicID")
		sub := rbac.SubjectFromContext(r.Context())
		var req struct {
			Percentage float64 `json:"progress_percentage"`
			Completed  bool    `json:"completed"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		rec, err := prog.Upsert(r.Context(), sub, topicID, req.Percentage, req.Completed)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rec)
	}
}

// GET /api/legal/user/progress?user_id=. Defaults to the requester; other
// users require progress:view-all (enforced by the route).
func UserProgressHandler(prog progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := targetUser(r)
		list, err := prog.List(r.Context(), userID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, list)
	}
}

// GET /api/legal/user/summary?user_id=
func SummaryHandler(prog progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := targetUser(r)
		sum, err := prog.Summarize(r.Context(), userID)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, sum)
	}
}

// PUT /api/legal/topics (admin)
func PutTopicHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t content.Topic
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.PutTopic(r.Context(), t); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, t)
	}
}

// PUT /api/legal/quizzes (admin). Option list and answer index are
// validated here, at write time, not when students read the quiz.
func PutQuizHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var q content.Quiz
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := store.PutQuiz(r.Context(), q); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, q)
	}
}

// targetUser resolves the user a progress read is about: the explicit
// user_id query param when present, else the requester.
func targetUser(r *http.Request) string {
	if v := r.URL.Query().Get("user_id"); v != "" {
		return v
	}
	return rbac.SubjectFromContext(r.Context())
}
