package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dashab/portumem/internal/middleware"
	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

// CredentialStore defines the interface for credential persistence.
type CredentialStore interface {
	Create(username string, cred models.Credential) error
	Get(username string) (*models.Credential, error)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    CredentialStore
	hasher   *Hasher
	tokens   *TokenIssuer
	validate *validator.Validate
}

func NewHandler(users CredentialStore, hasher *Hasher, tokens *TokenIssuer) *Handler {
	v := validator.New()
	// Progress files are keyed by the username, so the charset must stay
	// filesystem-safe or two accounts could alias the same file.
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			case r == '_', r == '-', r == '.':
			default:
				return false
			}
		}
		return true
	})
	return &Handler{users: users, hasher: hasher, tokens: tokens, validate: v}
}

// Register creates a new account and returns a fresh token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		http.Error(w, `{"error":"invalid username or password format"}`, http.StatusBadRequest)
		return
	}

	hashed, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.Printf("hash password: %v", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	cred := models.Credential{
		ID:           uuid.New().String(),
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.users.Create(req.Username, cred); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			http.Error(w, `{"error":"username taken"}`, http.StatusBadRequest)
			return
		}
		log.Printf("create user: %v", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}

	h.writeToken(w, req.Username)
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	cred, err := h.users.Get(req.Username)
	if err != nil || cred == nil || !h.hasher.Verify(req.Password, cred.PasswordHash) {
		http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
		return
	}

	h.writeToken(w, req.Username)
}

// Me returns the username of the authenticated caller.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"username": username})
}

func (h *Handler) writeToken(w http.ResponseWriter, username string) {
	token, exp := h.tokens.Issue(username)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.TokenResponse{Token: token, ExpiresAt: exp})
}
