package training

import (
	"strconv"

	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

// Summarize aggregates vocabulary progress across the whole dataset.
// Cards the user never answered appear with zero stats.
func Summarize(words []models.Word, progress *store.ProgressRecord) models.ProgressSummary {
	summary := models.ProgressSummary{
		Total:  len(words),
		ByCard: make(map[int]map[string]int, len(words)),
	}
	for _, w := range words {
		if _, ok := progress.Cards[strconv.Itoa(w.ID)]; ok {
			summary.Studied++
		}
		stats := progress.CardStatsFor(w.ID)
		if Learned(stats) {
			summary.Learned++
		}
		summary.ByCard[w.ID] = map[string]int{
			"seen":      stats.Seen,
			"correct":   stats.Correct,
			"incorrect": stats.Incorrect,
			"streak":    stats.Streak,
		}
	}
	return summary
}

// SummarizeVerbs aggregates conjugation drill progress. Seen and Mastered
// count verbs, not attempts: a verb is seen after any attempt and mastered
// after any fully correct one.
func SummarizeVerbs(verbs []models.Verb, progress *store.ProgressRecord) models.VerbProgressSummary {
	summary := models.VerbProgressSummary{
		Total:  len(verbs),
		ByVerb: make(map[int]map[string]int, len(verbs)),
	}
	for _, v := range verbs {
		stats := progress.VerbStatsFor(v.ID)
		if stats.Seen > 0 {
			summary.Seen++
		}
		if stats.Mastered > 0 {
			summary.Mastered++
		}
		summary.ByVerb[v.ID] = map[string]int{
			"seen":     stats.Seen,
			"mastered": stats.Mastered,
		}
	}
	return summary
}
