package quiz

import (
	"math/rand"

	"github.com/ecetin/vocabmaster/internal/models"
)

// Field selects which side of a word pair a question draws values from.
type Field string

const (
	FieldEnglish Field = "english"
	FieldTurkish Field = "turkish"
)

func (f Field) valueOf(w models.Word) string {
	if f == FieldTurkish {
		return w.Turkish
	}
	return w.English
}

// Distractors draws up to k values of the selected field from the pool,
// without replacement and in random order, skipping values equal to the
// correct answer (case-sensitive). Duplicate values across different pool
// words may repeat among the results; only the correct answer is deduped.
// When the pool runs dry fewer than k values are returned, never invented.
func Distractors(rng *rand.Rand, pool []models.Word, field Field, correct string, k int) []string {
	remaining := append([]models.Word(nil), pool...)
	out := make([]string, 0, k)

	for len(out) < k && len(remaining) > 0 {
		i := rng.Intn(len(remaining))
		candidate := remaining[i]
		remaining[i] = remaining[len(remaining)-1]
		remaining = remaining[:len(remaining)-1]

		if v := field.valueOf(candidate); v != correct {
			out = append(out, v)
		}
	}
	return out
}

// shuffle is an in-place Fisher-Yates over any slice.
func shuffle[T any](rng *rand.Rand, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
