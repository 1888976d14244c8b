package training

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dashab/portumem/internal/store"
)

func TestLearned(t *testing.T) {
	tests := []struct {
		name  string
		stats store.CardStats
		want  bool
	}{
		{"fresh card", store.CardStats{}, false},
		{"enough correct and streak", store.CardStats{Correct: 3, Streak: 2}, true},
		{"enough correct, short streak", store.CardStats{Correct: 3, Streak: 1}, false},
		{"long streak, few correct", store.CardStats{Correct: 2, Streak: 2}, false},
		{"well past thresholds", store.CardStats{Correct: 10, Streak: 7}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Learned(tt.stats))
		})
	}
}

func TestMasteryRegressesAfterMiss(t *testing.T) {
	now := time.Now().UTC()
	stats := &store.CardStats{}

	// Three correct answers in a row reach mastery.
	for i := 0; i < 3; i++ {
		ApplyAnswer(stats, true, now)
	}
	require.True(t, Learned(*stats))

	// One miss breaks the streak; correct count stays, mastery is gone.
	ApplyAnswer(stats, false, now)
	require.Equal(t, 3, stats.Correct)
	require.Zero(t, stats.Streak)
	require.False(t, Learned(*stats))
}

func TestLearnedOnlyAfterThirdCorrect(t *testing.T) {
	now := time.Now().UTC()
	stats := &store.CardStats{}

	ApplyAnswer(stats, true, now)
	ApplyAnswer(stats, true, now)
	require.Equal(t, store.CardStats{Seen: 2, Correct: 2, Streak: 2, LastSeen: now}, *stats)
	require.False(t, Learned(*stats))

	ApplyAnswer(stats, true, now)
	require.True(t, Learned(*stats))
}
