package training

import "github.com/dashab/portumem/internal/store"

const (
	learnedMinCorrect = 3
	learnedMinStreak  = 2
)

// Learned reports whether a card counts as learned: at least three correct
// answers overall and a current streak of at least two. A miss resets the
// streak, so a learned card regresses and gets drilled again after a lapse.
func Learned(stats store.CardStats) bool {
	return stats.Correct >= learnedMinCorrect && stats.Streak >= learnedMinStreak
}
