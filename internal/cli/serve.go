package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	api "github.com/rights360/rights360/internal/api/http"
	"github.com/rights360/rights360/internal/auth"
	"github.com/rights360/rights360/internal/cache"
	"github.com/rights360/rights360/internal/config"
	"github.com/rights360/rights360/internal/content"
	"github.com/rights360/rights360/internal/db"
	"github.com/rights360/rights360/internal/progress"
	"github.com/rights360/rights360/internal/quiz"
	"github.com/rights360/rights360/internal/rbac"

	"github.com/rights360/rights360/internal/assistant"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath)
		},
	}
}

func runServer(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		return err
	}
	defer dbh.Close()

	store := content.NewSQLStore(dbh)
	progStore := progress.NewSQLStore(dbh)
	evaluator := quiz.NewEvaluator(store, quiz.NewSQLResultLog(dbh), cfg.PassThreshold)
	responder := assistant.NewResponder(assistant.DefaultEntries())
	authSvc := auth.NewService(cfg.HMACSecret, config.TTLDuration(cfg.TokenTTL, 30*24*time.Hour))

	var topics cache.TopicSource
	cacheTTL := config.TTLDuration(cfg.CacheTTL, 10*time.Minute)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		topics = cache.NewRedisTopicCache(client, store, cacheTTL)
	} else {
		topics = cache.NewMemoryTopicCache(store, cacheTTL)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Public
	r.Post("/api/auth/register", api.RegisterHandler(dbh, authSvc))
	r.Post("/api/auth/login", api.LoginHandler(dbh, authSvc))
	r.Get("/api/legal/topics", api.ListTopicsHandler(topics))
	r.Get("/api/legal/categories", api.CategoriesHandler(store))

	// Protected (JWT → subject+role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(authSvc))

		pr.Get("/api/auth/me", api.MeHandler(dbh))

		pr.With(rbac.Require("topic:view")).
			Get("/api/legal/topics/{slug}", api.GetTopicHandler(store, progStore))
		pr.With(rbac.Require("progress:update-own")).
			Post("/api/legal/topics/{topicID}/progress", api.UpdateProgressHandler(progStore))
		pr.With(rbac.RequireSelfOr("progress:view-all", targetUserParam)).
			Get("/api/legal/user/progress", api.UserProgressHandler(progStore))
		pr.With(rbac.RequireSelfOr("progress:view-all", targetUserParam)).
			Get("/api/legal/user/summary", api.SummaryHandler(progStore))

		pr.With(rbac.Require("quiz:view")).
			Get("/api/quiz/random", api.RandomQuizHandler(store))
		pr.With(rbac.Require("quiz:view")).
			Get("/api/quiz/topic/{topicID}", api.TopicQuizzesHandler(store))
		pr.With(rbac.Require("quiz:submit")).
			Post("/api/quiz/submit", api.SubmitAnswerHandler(evaluator))
		pr.With(rbac.Require("quiz:submit")).
			Post("/api/quiz/topic/{topicID}/evaluate", api.EvaluateTopicHandler(evaluator, progStore))
		pr.With(rbac.Require("quiz:view")).
			Get("/api/quiz/results", api.ResultsHandler(evaluator))

		pr.With(rbac.Require("assistant:ask")).
			Post("/api/ai/assistant", api.AssistantHandler(responder))
		pr.With(rbac.Require("assistant:ask")).
			Post("/api/ai/explain-topic", api.ExplainTopicHandler(responder))

		// Admin
		pr.With(rbac.Require("topic:manage")).
			Put("/api/legal/topics", api.PutTopicHandler(store))
		pr.With(rbac.Require("topic:manage")).
			Put("/api/legal/quizzes", api.PutQuizHandler(store))
		pr.With(rbac.Require("user:list")).
			Get("/api/users", api.ListUsersHandler(dbh))
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("rights360 listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down...")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}

func targetUserParam(r *http.Request) string {
	return r.URL.Query().Get("user_id")
}
