package training

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dashab/portumem/internal/dataset"
	"github.com/dashab/portumem/internal/middleware"
	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

const defaultOptionsCount = 4

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Handler holds training HTTP handlers.
type Handler struct {
	words    *dataset.Words
	verbs    *dataset.Verbs
	progress *store.ProgressStore
}

func NewHandler(words *dataset.Words, verbs *dataset.Verbs, progress *store.ProgressStore) *Handler {
	return &Handler{words: words, verbs: verbs, progress: progress}
}

func caller(w http.ResponseWriter, r *http.Request) (string, bool) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error":"authorization required"}`, http.StatusUnauthorized)
	}
	return username, ok
}

// Words lists the full vocabulary dataset.
func (h *Handler) Words(w http.ResponseWriter, r *http.Request) {
	words, err := h.words.All()
	if err != nil {
		log.Printf("load words: %v", err)
		http.Error(w, `{"error":"words dataset unavailable"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, words)
}

// Question samples a vocabulary question for the caller, biased toward
// cards the caller has not yet learned.
func (h *Handler) Question(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	words, err := h.words.All()
	if err != nil || len(words) == 0 {
		log.Printf("load words: %v", err)
		http.Error(w, `{"error":"words dataset unavailable"}`, http.StatusInternalServerError)
		return
	}

	optionsCount := defaultOptionsCount
	if raw := r.URL.Query().Get("options"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			optionsCount = n
		}
	}
	optionsCount = min(6, max(2, optionsCount))

	if raw := r.URL.Query().Get("categories"); raw != "" {
		wanted := map[string]bool{}
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				wanted[c] = true
			}
		}
		words = dataset.FilterByCategories(words, wanted)
	}

	progress := h.progress.Load(username)
	question, err := SampleQuestion(words, progress, r.URL.Query().Get("mode"), optionsCount)
	if err != nil {
		http.Error(w, `{"error":"invalid mode"}`, http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

// Answer grades a vocabulary answer and records it in the caller's progress.
func (h *Handler) Answer(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	card, err := h.words.ByID(req.CardID)
	if err != nil {
		if errors.Is(err, dataset.ErrCardNotFound) {
			http.Error(w, `{"error":"card not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("load words: %v", err)
		http.Error(w, `{"error":"words dataset unavailable"}`, http.StatusInternalServerError)
		return
	}

	correctAnswer, err := CorrectAnswer(card, req.Mode)
	if err != nil {
		http.Error(w, `{"error":"invalid mode"}`, http.StatusBadRequest)
		return
	}
	isCorrect := Normalize(req.Answer) == Normalize(correctAnswer)

	err = h.progress.Update(username, func(record *store.ProgressRecord) {
		ApplyAnswer(record.Card(req.CardID), isCorrect, time.Now().UTC())
	})
	if err != nil {
		log.Printf("save progress for %s: %v", username, err)
		http.Error(w, `{"error":"failed to save progress"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.AnswerResponse{Correct: isCorrect, CorrectAnswer: correctAnswer})
}

// Progress summarizes the caller's vocabulary progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	words, err := h.words.All()
	if err != nil {
		log.Printf("load words: %v", err)
		http.Error(w, `{"error":"words dataset unavailable"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, Summarize(words, h.progress.Load(username)))
}

// Reset clears the caller's progress.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	if err := h.progress.Reset(username); err != nil {
		log.Printf("reset progress for %s: %v", username, err)
		http.Error(w, `{"error":"failed to reset progress"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// VerbQuestion samples a conjugation drill question.
func (h *Handler) VerbQuestion(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	verbs, err := h.verbs.All()
	if err != nil || len(verbs) == 0 {
		log.Printf("load verbs: %v", err)
		http.Error(w, `{"error":"verbs dataset unavailable"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SampleVerbQuestion(verbs))
}

// VerbAnswer grades a full conjugation submission.
func (h *Handler) VerbAnswer(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	var req models.VerbAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	verb, err := h.verbs.ByID(req.VerbID)
	if err != nil {
		if errors.Is(err, dataset.ErrVerbNotFound) {
			http.Error(w, `{"error":"verb not found"}`, http.StatusNotFound)
			return
		}
		log.Printf("load verbs: %v", err)
		http.Error(w, `{"error":"verbs dataset unavailable"}`, http.StatusInternalServerError)
		return
	}

	results, allCorrect := GradeVerb(verb, req.Answers)
	correctForms := make(map[string]string, len(models.PronounOrder))
	for _, pronoun := range models.PronounOrder {
		correctForms[pronoun] = verb.Form(pronoun)
	}

	err = h.progress.Update(username, func(record *store.ProgressRecord) {
		ApplyVerbAnswer(record.Verb(verb.ID), allCorrect, time.Now().UTC())
	})
	if err != nil {
		log.Printf("save progress for %s: %v", username, err)
		http.Error(w, `{"error":"failed to save progress"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.VerbAnswerResponse{
		VerbID:       verb.ID,
		Infinitive:   verb.Infinitive,
		Results:      results,
		CorrectForms: correctForms,
		AllCorrect:   allCorrect,
	})
}

// VerbProgress summarizes the caller's conjugation drill progress.
func (h *Handler) VerbProgress(w http.ResponseWriter, r *http.Request) {
	username, ok := caller(w, r)
	if !ok {
		return
	}

	verbs, err := h.verbs.All()
	if err != nil {
		log.Printf("load verbs: %v", err)
		http.Error(w, `{"error":"verbs dataset unavailable"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, SummarizeVerbs(verbs, h.progress.Load(username)))
}

// VerbList lists the verb ids and infinitives available for drilling.
func (h *Handler) VerbList(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	verbs, err := h.verbs.All()
	if err != nil {
		log.Printf("load verbs: %v", err)
		http.Error(w, `{"error":"verbs dataset unavailable"}`, http.StatusInternalServerError)
		return
	}
	items := make([]models.VerbListItem, 0, len(verbs))
	for _, v := range verbs {
		items = append(items, models.VerbListItem{ID: v.ID, Infinitive: v.Infinitive})
	}
	writeJSON(w, http.StatusOK, items)
}
