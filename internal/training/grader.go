package training

import (
	"errors"
	"strings"
	"time"

	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

// Question modes. The choice modes carry multiple options, the input
// modes expect free text.
const (
	ModePT2RUChoice = "pt2ru_choice"
	ModeRU2PTChoice = "ru2pt_choice"
	ModePT2RUInput  = "pt2ru_input"
	ModeRU2PTInput  = "ru2pt_input"
)

// ErrInvalidMode is returned for a question mode outside the four known ones.
var ErrInvalidMode = errors.New("invalid mode")

// Normalize prepares text for comparison: trim, lowercase, and collapse
// internal whitespace runs to single spaces. No accent folding.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// CorrectAnswer returns the canonical answer for a card in the given mode.
func CorrectAnswer(word *models.Word, mode string) (string, error) {
	switch mode {
	case ModePT2RUChoice, ModePT2RUInput:
		return word.RU, nil
	case ModeRU2PTChoice, ModeRU2PTInput:
		return word.PT, nil
	}
	return "", ErrInvalidMode
}

// ApplyAnswer records one graded answer on a card's stats. A correct
// answer extends the streak, a miss resets it to zero.
func ApplyAnswer(stats *store.CardStats, correct bool, now time.Time) {
	stats.Seen++
	if correct {
		stats.Correct++
		stats.Streak++
	} else {
		stats.Incorrect++
		stats.Streak = 0
	}
	stats.LastSeen = now
}

// GradeVerb grades a conjugation submission against the canonical forms,
// walking the fixed pronoun order. Pronouns missing from the submission
// grade as incorrect.
func GradeVerb(verb *models.Verb, answers map[string]string) (results map[string]bool, allCorrect bool) {
	results = make(map[string]bool, len(models.PronounOrder))
	allCorrect = true
	for _, pronoun := range models.PronounOrder {
		submitted := strings.TrimSpace(answers[pronoun])
		ok := submitted != "" && Normalize(submitted) == Normalize(verb.Form(pronoun))
		results[pronoun] = ok
		if !ok {
			allCorrect = false
		}
	}
	return results, allCorrect
}

// ApplyVerbAnswer records one conjugation attempt on a verb's stats.
// Mastered only advances when every pronoun form was correct.
func ApplyVerbAnswer(stats *store.VerbStats, allCorrect bool, now time.Time) {
	stats.Seen++
	if allCorrect {
		stats.Mastered++
	}
	stats.LastSeen = now
}
