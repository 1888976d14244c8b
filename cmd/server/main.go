package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/dashab/portumem/internal/auth"
	"github.com/dashab/portumem/internal/config"
	"github.com/dashab/portumem/internal/dataset"
	"github.com/dashab/portumem/internal/middleware"
	"github.com/dashab/portumem/internal/store"
	"github.com/dashab/portumem/internal/training"
)

func main() {
	_ = godotenv.Load()

	flags := config.Flags()
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ── State ────────────────────────────────────────────────
	users := store.NewUserStore(cfg.UsersFile)
	progress, err := store.NewProgressStore(cfg.ProgressDir)
	if err != nil {
		log.Fatalf("progress store: %v", err)
	}
	words := dataset.NewWords(cfg.WordsFile)
	verbs := dataset.NewVerbs(cfg.VerbsFile)

	// ── Auth ─────────────────────────────────────────────────
	hasher := auth.NewHasher(cfg.PBKDF2Iterations)
	tokens := auth.NewTokenIssuer(cfg.Secret, cfg.TokenTTL())

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(users, hasher, tokens)
	trainingHandler := training.NewHandler(words, verbs, progress)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/words", trainingHandler.Words)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))
			r.Get("/me", authHandler.Me)
			r.Get("/question", trainingHandler.Question)
			r.Post("/answer", trainingHandler.Answer)
			r.Get("/progress", trainingHandler.Progress)
			r.Post("/reset", trainingHandler.Reset)
			r.Get("/verb/question", trainingHandler.VerbQuestion)
			r.Post("/verb/answer", trainingHandler.VerbAnswer)
			r.Get("/verb/progress", trainingHandler.VerbProgress)
			r.Get("/verb/list", trainingHandler.VerbList)
		})
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
