package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/storage"
	"github.com/ecetin/vocabmaster/internal/store"
)

func newTestStore(t *testing.T) (*store.WordStore, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return store.New(kv, 10), kv
}

func addWord(t *testing.T, s *store.WordStore, english, turkish string) *models.Word {
	t.Helper()
	word, err := s.AddWord(context.Background(), models.WordFields{English: english, Turkish: turkish})
	require.NoError(t, err)
	require.NotNil(t, word)
	return word
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok, "expected *errors.AppError, got %T", err)
	return appErr.Code
}

func TestAddWord(t *testing.T) {
	s, _ := newTestStore(t)

	word := addWord(t, s, "book", "kitap")
	assert.NotEmpty(t, word.ID)
	assert.Equal(t, models.GeneralCategoryID, word.Category)
	assert.False(t, word.DateAdded.IsZero())

	words := s.Words()
	require.Len(t, words, 1)
	assert.Equal(t, "book", words[0].English)
}

func TestAddWord_Validation(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.AddWord(context.Background(), models.WordFields{English: "", Turkish: "kitap"})
	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))

	_, err = s.AddWord(context.Background(), models.WordFields{English: "book", Turkish: "   "})
	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))
}

func TestAddWord_DuplicateEnglishCaseInsensitive(t *testing.T) {
	s, _ := newTestStore(t)
	addWord(t, s, "book", "kitap")

	_, err := s.AddWord(context.Background(), models.WordFields{English: "BOOK", Turkish: "defter"})
	assert.Equal(t, errors.ErrCodeDuplicateWord, appCode(t, err))
	assert.Len(t, s.Words(), 1)
}

func TestAddWord_UnknownCategoryFallsBackToGeneral(t *testing.T) {
	s, _ := newTestStore(t)

	word, err := s.AddWord(context.Background(), models.WordFields{
		English: "book", Turkish: "kitap", Category: "nope",
	})
	require.NoError(t, err)
	assert.Equal(t, models.GeneralCategoryID, word.Category)
}

func TestEditWord(t *testing.T) {
	s, _ := newTestStore(t)
	word := addWord(t, s, "book", "kitap")

	updated, err := s.EditWord(context.Background(), word.ID, models.WordFields{
		English: "notebook", Turkish: "defter",
	})
	require.NoError(t, err)
	assert.Equal(t, word.ID, updated.ID, "id never changes")
	assert.Equal(t, "notebook", updated.English)
	assert.Equal(t, "defter", updated.Turkish)

	_, err = s.EditWord(context.Background(), "missing", models.WordFields{English: "a", Turkish: "b"})
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestEditWord_DuplicateAgainstOtherWord(t *testing.T) {
	s, _ := newTestStore(t)
	addWord(t, s, "book", "kitap")
	pen := addWord(t, s, "pen", "kalem")

	_, err := s.EditWord(context.Background(), pen.ID, models.WordFields{English: "Book", Turkish: "kalem"})
	assert.Equal(t, errors.ErrCodeDuplicateWord, appCode(t, err))

	// Re-saving a word under its own english is not a collision.
	_, err = s.EditWord(context.Background(), pen.ID, models.WordFields{English: "PEN", Turkish: "kalem"})
	assert.NoError(t, err)
}

func TestDeleteWord_PrunesMembershipSets(t *testing.T) {
	s, _ := newTestStore(t)
	word := addWord(t, s, "book", "kitap")

	_, err := s.ToggleLearned(context.Background(), word.ID)
	require.NoError(t, err)
	_, err = s.ToggleFavorite(context.Background(), word.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteWord(context.Background(), word.ID))
	assert.Empty(t, s.Words())
	assert.False(t, s.IsLearned(word.ID))
	assert.False(t, s.IsFavorite(word.ID))

	err = s.DeleteWord(context.Background(), word.ID)
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestCreateCategory(t *testing.T) {
	s, _ := newTestStore(t)

	category, err := s.CreateCategory(context.Background(), "Verbs", "Action words")
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "Verbs", category.Name)

	_, err = s.CreateCategory(context.Background(), "verbs", "")
	assert.Equal(t, errors.ErrCodeDuplicateCategory, appCode(t, err))

	_, err = s.CreateCategory(context.Background(), "  ", "")
	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))
}

func TestDeleteCategory_ReassignsWordsToGeneral(t *testing.T) {
	s, _ := newTestStore(t)
	category, err := s.CreateCategory(context.Background(), "Verbs", "")
	require.NoError(t, err)

	word, err := s.AddWord(context.Background(), models.WordFields{
		English: "run", Turkish: "koşmak", Category: category.ID,
	})
	require.NoError(t, err)

	require.NoError(t, s.DeleteCategory(context.Background(), category.ID))

	reloaded, err := s.WordByID(word.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GeneralCategoryID, reloaded.Category)
}

func TestDeleteCategory_GeneralIsProtected(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.DeleteCategory(context.Background(), models.GeneralCategoryID)
	assert.Equal(t, errors.ErrCodeProtectedCategory, appCode(t, err))
}

func TestDeleteCategory_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.DeleteCategory(context.Background(), "missing")
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestCategoryWordCounts(t *testing.T) {
	s, _ := newTestStore(t)
	addWord(t, s, "book", "kitap")
	addWord(t, s, "pen", "kalem")

	for _, c := range s.Categories() {
		if c.ID == models.GeneralCategoryID {
			assert.Equal(t, 2, c.WordCount)
		}
	}
}

func TestToggle_FlipsMembership(t *testing.T) {
	s, _ := newTestStore(t)
	word := addWord(t, s, "book", "kitap")

	member, err := s.ToggleLearned(context.Background(), word.ID)
	require.NoError(t, err)
	assert.True(t, member)
	assert.True(t, s.IsLearned(word.ID))

	member, err = s.ToggleLearned(context.Background(), word.ID)
	require.NoError(t, err)
	assert.False(t, member)
	assert.False(t, s.IsLearned(word.ID))
}

func TestToggle_UnknownWord(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.ToggleDifficult(context.Background(), "missing")
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestSetMembership(t *testing.T) {
	s, _ := newTestStore(t)
	word := addWord(t, s, "book", "kitap")

	yes, no := true, false
	require.NoError(t, s.SetMembership(context.Background(), word.ID, &yes, &yes, nil))
	assert.True(t, s.IsLearned(word.ID))
	assert.True(t, s.IsFavorite(word.ID))
	assert.False(t, s.IsDifficult(word.ID))

	require.NoError(t, s.SetMembership(context.Background(), word.ID, &no, nil, nil))
	assert.False(t, s.IsLearned(word.ID))
	assert.True(t, s.IsFavorite(word.ID), "nil leaves membership untouched")
}

func TestNotes(t *testing.T) {
	s, _ := newTestStore(t)

	note, err := s.AddNote(context.Background(), "Grammar", "Present perfect usage")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)

	_, err = s.AddNote(context.Background(), "", "content")
	assert.Equal(t, errors.ErrCodeValidation, appCode(t, err))

	require.NoError(t, s.DeleteNote(context.Background(), note.ID))
	assert.Empty(t, s.Notes())

	err = s.DeleteNote(context.Background(), note.ID)
	assert.Equal(t, errors.ErrCodeNotFound, appCode(t, err))
}

func TestWordsByCategoryAndFilters(t *testing.T) {
	s, _ := newTestStore(t)
	category, err := s.CreateCategory(context.Background(), "Verbs", "")
	require.NoError(t, err)

	run, err := s.AddWord(context.Background(), models.WordFields{
		English: "run", Turkish: "koşmak", Category: category.ID,
	})
	require.NoError(t, err)
	addWord(t, s, "book", "kitap")

	byCategory := s.WordsByCategory(category.ID)
	require.Len(t, byCategory, 1)
	assert.Equal(t, run.ID, byCategory[0].ID)

	_, err = s.ToggleLearned(context.Background(), run.ID)
	require.NoError(t, err)
	learned := s.LearnedWords()
	require.Len(t, learned, 1)
	assert.Equal(t, run.ID, learned[0].ID)
}

func TestFilterWords(t *testing.T) {
	s, _ := newTestStore(t)
	category, err := s.CreateCategory(context.Background(), "Verbs", "")
	require.NoError(t, err)

	run, err := s.AddWord(context.Background(), models.WordFields{
		English: "run", Turkish: "koşmak", Category: category.ID,
	})
	require.NoError(t, err)
	book := addWord(t, s, "book", "kitap")
	addWord(t, s, "pen", "kalem")

	_, err = s.ToggleLearned(context.Background(), run.ID)
	require.NoError(t, err)
	_, err = s.ToggleLearned(context.Background(), book.ID)
	require.NoError(t, err)

	assert.Len(t, s.FilterWords("", "", ""), 3)
	assert.Len(t, s.FilterWords(category.ID, "", ""), 1)
	assert.Len(t, s.FilterWords("", "learned", ""), 2)

	byBoth := s.FilterWords(category.ID, "learned", "")
	require.Len(t, byBoth, 1)
	assert.Equal(t, run.ID, byBoth[0].ID)

	bySearch := s.FilterWords("", "", "KIT")
	require.Len(t, bySearch, 1, "search is case-insensitive and matches turkish")
	assert.Equal(t, book.ID, bySearch[0].ID)

	assert.Empty(t, s.FilterWords("", "difficult", ""))
}

func TestFilterWords_DoesNotWedgeBehindWriters(t *testing.T) {
	s, _ := newTestStore(t)
	word := addWord(t, s, "book", "kitap")
	_, err := s.ToggleLearned(context.Background(), word.ID)
	require.NoError(t, err)

	// Membership filtering used to re-enter the store's read lock from
	// inside a predicate. With a writer queued on the mutex that nested
	// read blocked forever and wedged every later store call. Hammer
	// filtered reads against concurrent writes and require progress.
	done := make(chan error, 1)
	go func() {
		for i := 0; i < 200; i++ {
			_, err := s.AddWord(context.Background(), models.WordFields{
				English: fmt.Sprintf("word-%d", i), Turkish: fmt.Sprintf("kelime-%d", i),
			})
			if err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := 0; i < 200; i++ {
		s.FilterWords("", "learned", "")
	}

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("writer never finished while filtered reads were running")
	}
	assert.Len(t, s.FilterWords("", "learned", ""), 1)
}

func TestDailyPracticeAndPreferences(t *testing.T) {
	s, _ := newTestStore(t)

	dp := s.DailyPractice()
	assert.Equal(t, 10, dp.Goal)

	dp.Streak = 3
	dp.LastPracticeDate = "2026-03-01"
	require.NoError(t, s.SetDailyPractice(context.Background(), dp))
	assert.Equal(t, 3, s.DailyPractice().Streak)

	prefs := s.Preferences()
	prefs.Theme = "dark"
	require.NoError(t, s.SetPreferences(context.Background(), prefs))
	assert.Equal(t, "dark", s.Preferences().Theme)
}

func TestLoad_RoundTripsThroughKV(t *testing.T) {
	kv := storage.NewMemory()
	s := store.New(kv, 10)

	word := addWord(t, s, "book", "kitap")
	_, err := s.CreateCategory(context.Background(), "Verbs", "")
	require.NoError(t, err)
	_, err = s.ToggleLearned(context.Background(), word.ID)
	require.NoError(t, err)
	_, err = s.AddNote(context.Background(), "Grammar", "notes")
	require.NoError(t, err)

	reloaded := store.New(kv, 10)
	require.NoError(t, reloaded.Load(context.Background()))

	assert.Len(t, reloaded.Words(), 1)
	assert.Len(t, reloaded.Categories(), 2)
	assert.Len(t, reloaded.Notes(), 1)
	assert.True(t, reloaded.IsLearned(word.ID))
}

func TestLoad_FirstRunKeepsDefaults(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.Load(context.Background()))

	categories := s.Categories()
	require.Len(t, categories, 1)
	assert.Equal(t, models.GeneralCategoryID, categories[0].ID)
	assert.Equal(t, 10, s.DailyPractice().Goal)
}

func TestLoad_MalformedBlobIsReportedNotFatal(t *testing.T) {
	kv := storage.NewMemory()
	require.NoError(t, kv.Set(context.Background(), "vocabulary:words", "{not json"))
	require.NoError(t, kv.Set(context.Background(), "vocabulary:notes",
		`[{"id":"n1","title":"Grammar","content":"x"}]`))

	s := store.New(kv, 10)
	err := s.Load(context.Background())
	assert.Equal(t, errors.ErrCodePersistence, appCode(t, err))

	// The healthy blobs still loaded.
	assert.Len(t, s.Notes(), 1)
}

func TestMerge_DedupesAndAssignsFreshIDs(t *testing.T) {
	s, _ := newTestStore(t)
	addWord(t, s, "book", "kitap")

	added, err := s.Merge(context.Background(),
		[]models.Word{
			{ID: "imp-1", English: "Book", Turkish: "kitap"},
			{ID: "imp-2", English: "pen", Turkish: "kalem", Category: "unknown"},
		},
		[]models.Category{
			{ID: "imp-c1", Name: "General", Description: "dup by name"},
			{ID: "imp-c2", Name: "Verbs", Description: "new"},
		},
		[]models.Note{{ID: "imp-n1", Title: "Grammar", Content: "x"}},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, added, "duplicate english is skipped")

	words := s.Words()
	require.Len(t, words, 2)
	for _, w := range words {
		assert.NotEqual(t, "imp-2", w.ID, "imported ids are reissued")
		if w.English == "pen" {
			assert.Equal(t, models.GeneralCategoryID, w.Category)
		}
	}

	require.Len(t, s.Categories(), 2)
	notes := s.Notes()
	require.Len(t, notes, 1)
	assert.NotEqual(t, "imp-n1", notes[0].ID)
}
