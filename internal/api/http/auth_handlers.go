package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rights360/rights360/internal/auth"
	"github.com/rights360/rights360/internal/platform"
	"github.com/rights360/rights360/internal/rbac"
)

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        auth.User `json:"user"`
}

// POST /api/auth/register {"username":..., "email":..., "password":...}
func RegisterHandler(db *sql.DB, svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := auth.Register(r.Context(), db, req.Username, req.Email, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		tok, err := svc.IssueToken(u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, tokenResponse{AccessToken: tok, TokenType: "bearer", User: u})
	}
}

// POST /api/auth/login {"username":..., "password":...}: username may also
// be the account email.
func LoginHandler(db *sql.DB, svc *auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		u, err := auth.Authenticate(r.Context(), db, req.Username, req.Password)
		if err != nil {
			if errors.Is(err, platform.ErrNotFound) {
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			writeErr(w, err)
			return
		}
		tok, err := svc.IssueToken(u.ID, u.Role)
		if err != nil {
			http.Error(w, "issue token", http.StatusInternalServerError)
			return
		}
		writeJSON(w, tokenResponse{AccessToken: tok, TokenType: "bearer", User: u})
	}
}

// GET /api/auth/me
func MeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub := rbac.SubjectFromContext(r.Context())
		if sub == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		u, err := auth.GetUser(r.Context(), db, sub)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, u)
	}
}

// GET /api/users?role= (admin)
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := r.URL.Query().Get("role")
		var rows *sql.Rows
		var err error
		if role == "" {
			rows, err = db.QueryContext(r.Context(), `SELECT id,username,email,role,created_at FROM users ORDER BY username`)
		} else {
			rows, err = db.QueryContext(r.Context(), `SELECT id,username,email,role,created_at FROM users WHERE role=$1 ORDER BY username`, role)
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()
		out := []auth.User{}
		for rows.Next() {
			var u auth.User
			if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Role, &u.CreatedAt); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, u)
		}
		writeJSON(w, out)
	}
}
