package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/progress"
	"github.com/rights360/rights360/internal/quiz"
	"github.com/rights360/rights360/internal/rbac"
)

// GET /api/quiz/random?topic_id=&difficulty=
func RandomQuizHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := store.RandomQuiz(r.Context(), r.URL.Query().Get("topic_id"), r.URL.Query().Get("difficulty"))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, q)
	}
}

// GET /api/quiz/topic/{topicID}?difficulty=&limit=
func TopicQuizzesHandler(store content.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID := chi.URLParam(r, "topicID")
		limit := parseIntDefault(r.URL.Query().Get("limit"), 10)
		qs, err := store.ListQuizzes(r.Context(), topicID, r.URL.Query().Get("difficulty"), limit)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, qs)
	}
}

// POST /api/quiz/submit {"quiz_id":..,"selected_answer":..,"time_taken":..}
func SubmitAnswerHandler(ev *quiz.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		var req struct {
			QuizID    string `json:"quiz_id"`
			Selected  int    `json:"selected_answer"`
			TimeTaken *int   `json:"time_taken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		res, err := ev.SubmitAnswer(r.Context(), sub, req.QuizID, req.Selected, req.TimeTaken)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, res)
	}
}

// POST /api/quiz/topic/{topicID}/evaluate {"answers":[{"quiz_id":..,"selected_answer":..}]}
// Scores the submission against the topic's full quiz set, then records the
// outcome as the requester's progress for that topic.
func EvaluateTopicHandler(ev *quiz.Evaluator, prog progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topicID := chi.URLParam(r, "topicID")
		sub := rbac.SubjectFromContext(r.Context())
		var req struct {
			Answers []quiz.Answer `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		report, err := ev.EvaluateTopic(r.Context(), topicID, req.Answers)
		if err != nil {
			writeErr(w, err)
			return
		}
		if _, err := prog.Upsert(r.Context(), sub, topicID, report.Score, report.Passed); err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, report)
	}
}

// GET /api/quiz/results
func ResultsHandler(ev *quiz.Evaluator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ev.Results(r.Context(), rbac.SubjectFromContext(r.Context()))
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, res)
	}
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
