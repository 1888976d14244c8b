// Package dataset loads the read-only vocabulary and verb reference data.
// Files are parsed once and cached for the process lifetime; a missing or
// unparsable file is reported to every caller until it is fixed, so a bad
// deployment fails requests without killing the process.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dashab/portumem/internal/models"
)

var (
	ErrCardNotFound = errors.New("card not found")
	ErrVerbNotFound = errors.New("verb not found")
)

// Words serves the vocabulary dataset.
type Words struct {
	path string

	mu    sync.Mutex
	cache []models.Word
}

func NewWords(path string) *Words {
	return &Words{path: path}
}

// All returns every vocabulary card.
func (w *Words) All() ([]models.Word, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cache != nil {
		return w.cache, nil
	}
	raw, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("read words dataset: %w", err)
	}
	var words []models.Word
	if err := json.Unmarshal(raw, &words); err != nil {
		return nil, fmt.Errorf("parse words dataset: %w", err)
	}
	w.cache = words
	return words, nil
}

// ByID returns the card with the given id, or ErrCardNotFound.
func (w *Words) ByID(cardID int) (*models.Word, error) {
	words, err := w.All()
	if err != nil {
		return nil, err
	}
	for i := range words {
		if words[i].ID == cardID {
			return &words[i], nil
		}
	}
	return nil, ErrCardNotFound
}

// FilterByCategories returns the cards whose category is in the wanted
// set. An empty set, or a set matching nothing, yields the full list.
func FilterByCategories(words []models.Word, wanted map[string]bool) []models.Word {
	if len(wanted) == 0 {
		return words
	}
	var filtered []models.Word
	for _, w := range words {
		if wanted[w.Category] {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) == 0 {
		return words
	}
	return filtered
}

// Verbs serves the verb conjugation dataset.
type Verbs struct {
	path string

	mu    sync.Mutex
	cache []models.Verb
}

func NewVerbs(path string) *Verbs {
	return &Verbs{path: path}
}

// All returns every verb card.
func (v *Verbs) All() ([]models.Verb, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.cache != nil {
		return v.cache, nil
	}
	raw, err := os.ReadFile(v.path)
	if err != nil {
		return nil, fmt.Errorf("read verbs dataset: %w", err)
	}
	var verbs []models.Verb
	if err := json.Unmarshal(raw, &verbs); err != nil {
		return nil, fmt.Errorf("parse verbs dataset: %w", err)
	}
	v.cache = verbs
	return verbs, nil
}

// ByID returns the verb with the given id, or ErrVerbNotFound.
func (v *Verbs) ByID(verbID int) (*models.Verb, error) {
	verbs, err := v.All()
	if err != nil {
		return nil, err
	}
	for i := range verbs {
		if verbs[i].ID == verbID {
			return &verbs[i], nil
		}
	}
	return nil, ErrVerbNotFound
}
