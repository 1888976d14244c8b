package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dashab/portumem/internal/models"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWordsAllAndByID(t *testing.T) {
	path := writeFile(t, "words.json", `[
		{"id": 1, "pt": "casa", "ru": "дом", "category": "home"},
		{"id": 2, "pt": "gato", "ru": "кот"}
	]`)
	words := NewWords(path)

	all, err := words.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "home", all[0].Category)

	card, err := words.ByID(2)
	require.NoError(t, err)
	require.Equal(t, "gato", card.PT)

	_, err = words.ByID(99)
	require.ErrorIs(t, err, ErrCardNotFound)
}

func TestWordsCachesAfterFirstLoad(t *testing.T) {
	path := writeFile(t, "words.json", `[{"id": 1, "pt": "casa", "ru": "дом"}]`)
	words := NewWords(path)

	_, err := words.All()
	require.NoError(t, err)

	// The file is gone but the cache keeps serving.
	require.NoError(t, os.Remove(path))
	all, err := words.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestWordsMissingFile(t *testing.T) {
	words := NewWords(filepath.Join(t.TempDir(), "nope.json"))
	_, err := words.All()
	require.Error(t, err)
}

func TestWordsCorruptFile(t *testing.T) {
	words := NewWords(writeFile(t, "words.json", "{broken"))
	_, err := words.All()
	require.Error(t, err)
}

func TestFilterByCategories(t *testing.T) {
	words := []models.Word{
		{ID: 1, Category: "home"},
		{ID: 2, Category: "animals"},
		{ID: 3, Category: "home"},
	}

	filtered := FilterByCategories(words, map[string]bool{"home": true})
	require.Len(t, filtered, 2)

	// No filter, or a filter matching nothing, yields the full set.
	require.Len(t, FilterByCategories(words, nil), 3)
	require.Len(t, FilterByCategories(words, map[string]bool{"astronomy": true}), 3)
}

func TestVerbsAllAndByID(t *testing.T) {
	path := writeFile(t, "verbs.json", `[
		{"id": 1, "infinitive": "falar", "eu": "falo", "tu": "falas", "ele": "fala", "nos": "falamos", "eles": "falam"}
	]`)
	verbs := NewVerbs(path)

	all, err := verbs.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	verb, err := verbs.ByID(1)
	require.NoError(t, err)
	require.Equal(t, "falamos", verb.Form("nos"))
	require.Empty(t, verb.Form("vós"))

	_, err = verbs.ByID(7)
	require.ErrorIs(t, err, ErrVerbNotFound)
}
