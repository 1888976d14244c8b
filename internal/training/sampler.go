package training

import (
	"math/rand"

	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

// SampleQuestion picks a card biased toward not-yet-learned ones and
// shapes it into a question for the given mode. When every card is
// learned the whole set becomes the pool again.
func SampleQuestion(words []models.Word, progress *store.ProgressRecord, mode string, optionsCount int) (*models.Question, error) {
	pool := notLearned(words, progress)
	if len(pool) == 0 {
		pool = words
	}
	card := pool[rand.Intn(len(pool))]

	var prompt, correct string
	switch mode {
	case ModePT2RUChoice:
		prompt, correct = card.PT, card.RU
	case ModeRU2PTChoice:
		prompt, correct = card.RU, card.PT
	case ModePT2RUInput:
		return &models.Question{CardID: card.ID, Mode: mode, Prompt: card.PT}, nil
	case ModeRU2PTInput:
		return &models.Question{CardID: card.ID, Mode: mode, Prompt: card.RU}, nil
	default:
		return nil, ErrInvalidMode
	}

	options := append(sampleDistractors(words, card, mode, optionsCount-1), correct)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return &models.Question{CardID: card.ID, Mode: mode, Prompt: prompt, Options: options}, nil
}

// SampleVerbQuestion picks a verb uniformly. Conjugation drills carry no
// learned bias.
func SampleVerbQuestion(verbs []models.Verb) *models.VerbQuestion {
	verb := verbs[rand.Intn(len(verbs))]
	return &models.VerbQuestion{
		VerbID:     verb.ID,
		Infinitive: verb.Infinitive,
		Pronouns:   models.PronounOrder,
	}
}

func notLearned(words []models.Word, progress *store.ProgressRecord) []models.Word {
	var pool []models.Word
	for _, w := range words {
		if !Learned(progress.CardStatsFor(w.ID)) {
			pool = append(pool, w)
		}
	}
	return pool
}

// sampleDistractors draws up to count target-field values, without
// replacement, from cards other than the prompted one.
func sampleDistractors(words []models.Word, card models.Word, mode string, count int) []string {
	if count < 1 {
		count = 1
	}
	var others []string
	for _, w := range words {
		if w.ID == card.ID {
			continue
		}
		if mode == ModePT2RUChoice {
			others = append(others, w.RU)
		} else {
			others = append(others, w.PT)
		}
	}
	if count > len(others) {
		count = len(others)
	}
	distractors := make([]string, 0, count)
	for _, i := range rand.Perm(len(others))[:count] {
		distractors = append(distractors, others[i])
	}
	return distractors
}
