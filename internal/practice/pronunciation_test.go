package practice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecetin/vocabmaster/internal/practice"
)

func TestPronunciationAccuracy_ExactMatch(t *testing.T) {
	assert.Equal(t, 100, practice.PronunciationAccuracy("book", "book"))
	assert.Equal(t, 100, practice.PronunciationAccuracy("Book", "book!"), "normalization applies before scoring")
}

func TestPronunciationAccuracy_CloseMatch(t *testing.T) {
	// One substitution over four runes.
	assert.Equal(t, 75, practice.PronunciationAccuracy("book", "look"))
	// One missing rune over five.
	assert.Equal(t, 80, practice.PronunciationAccuracy("apple", "aple"))
}

func TestPronunciationAccuracy_Mismatch(t *testing.T) {
	score := practice.PronunciationAccuracy("pronunciation", "cat")
	assert.Less(t, score, practice.PassThreshold)
}

func TestPronunciationAccuracy_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, practice.PronunciationAccuracy("", ""))
	assert.Equal(t, 0, practice.PronunciationAccuracy("book", ""))
}

func TestPronunciationAccuracy_TurkishRunes(t *testing.T) {
	// Rune-safe scoring: "ağaç" vs "agac" differs in two of four runes.
	assert.Equal(t, 50, practice.PronunciationAccuracy("ağaç", "agac"))
}

func TestAccuracyLabel(t *testing.T) {
	tests := []struct {
		accuracy int
		want     string
	}{
		{100, practice.LabelExcellent},
		{90, practice.LabelExcellent},
		{89, practice.LabelGood},
		{75, practice.LabelGood},
		{74, practice.LabelFair},
		{60, practice.LabelFair},
		{59, practice.LabelNeedsPractice},
		{0, practice.LabelNeedsPractice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, practice.AccuracyLabel(tt.accuracy))
	}
}
