package training

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashab/portumem/internal/models"
	"github.com/dashab/portumem/internal/store"
)

var sampleWords = []models.Word{
	{ID: 1, PT: "casa", RU: "дом"},
	{ID: 2, PT: "gato", RU: "кот"},
}

func TestSampleQuestionChoice(t *testing.T) {
	q, err := SampleQuestion(sampleWords, store.NewProgressRecord(), ModePT2RUChoice, 2)
	require.NoError(t, err)
	require.Equal(t, ModePT2RUChoice, q.Mode)
	require.Len(t, q.Options, 2)

	// The options are the correct answer plus the only possible distractor.
	require.ElementsMatch(t, []string{"дом", "кот"}, q.Options)
	switch q.CardID {
	case 1:
		require.Equal(t, "casa", q.Prompt)
	case 2:
		require.Equal(t, "gato", q.Prompt)
	default:
		t.Fatalf("unexpected card id %d", q.CardID)
	}
}

func TestSampleQuestionReverseChoice(t *testing.T) {
	q, err := SampleQuestion(sampleWords, store.NewProgressRecord(), ModeRU2PTChoice, 2)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"casa", "gato"}, q.Options)
}

func TestSampleQuestionInputHasNoOptions(t *testing.T) {
	for _, mode := range []string{ModePT2RUInput, ModeRU2PTInput} {
		q, err := SampleQuestion(sampleWords, store.NewProgressRecord(), mode, 4)
		require.NoError(t, err)
		require.Empty(t, q.Options, "mode=%s", mode)
		require.NotEmpty(t, q.Prompt)
	}
}

func TestSampleQuestionInvalidMode(t *testing.T) {
	_, err := SampleQuestion(sampleWords, store.NewProgressRecord(), "pt2ru_telepathy", 4)
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestSampleQuestionPrefersUnlearned(t *testing.T) {
	progress := store.NewProgressRecord()
	learned := progress.Card(1)
	learned.Correct, learned.Streak = 3, 2

	for i := 0; i < 50; i++ {
		q, err := SampleQuestion(sampleWords, progress, ModePT2RUInput, 4)
		require.NoError(t, err)
		require.Equal(t, 2, q.CardID)
	}
}

func TestSampleQuestionFallsBackWhenAllLearned(t *testing.T) {
	progress := store.NewProgressRecord()
	for _, w := range sampleWords {
		stats := progress.Card(w.ID)
		stats.Correct, stats.Streak = 5, 5
	}

	q, err := SampleQuestion(sampleWords, progress, ModePT2RUInput, 4)
	require.NoError(t, err)
	require.Contains(t, []int{1, 2}, q.CardID)
}

func TestSampleQuestionClampsDistractorsToDataset(t *testing.T) {
	// Asking for 6 options with only one possible distractor yields two.
	q, err := SampleQuestion(sampleWords, store.NewProgressRecord(), ModePT2RUChoice, 6)
	require.NoError(t, err)
	require.Len(t, q.Options, 2)
}

func TestSampleQuestionDistractorsWithoutReplacement(t *testing.T) {
	words := []models.Word{
		{ID: 1, PT: "casa", RU: "дом"},
		{ID: 2, PT: "gato", RU: "кот"},
		{ID: 3, PT: "pão", RU: "хлеб"},
		{ID: 4, PT: "água", RU: "вода"},
		{ID: 5, PT: "rua", RU: "улица"},
	}
	for i := 0; i < 20; i++ {
		q, err := SampleQuestion(words, store.NewProgressRecord(), ModePT2RUChoice, 4)
		require.NoError(t, err)
		require.Len(t, q.Options, 4)

		unique := map[string]bool{}
		for _, o := range q.Options {
			unique[o] = true
		}
		require.Len(t, unique, 4, "options=%v", q.Options)
	}
}

func TestSampleVerbQuestion(t *testing.T) {
	verbs := []models.Verb{
		{ID: 1, Infinitive: "falar"},
		{ID: 2, Infinitive: "comer"},
	}

	q := SampleVerbQuestion(verbs)
	require.Contains(t, []int{1, 2}, q.VerbID)
	require.NotEmpty(t, q.Infinitive)
	require.Equal(t, models.PronounOrder, q.Pronouns)
}
