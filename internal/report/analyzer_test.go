package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/report"
	"github.com/ecetin/vocabmaster/internal/store"
)

func snapshotWith(words []models.Word, learned, difficult []string, streak int) store.Snapshot {
	return store.Snapshot{
		Words: words,
		Categories: []models.Category{
			{ID: models.GeneralCategoryID, Name: "General"},
		},
		Learned:   learned,
		Difficult: difficult,
		Practice:  models.DailyPractice{Streak: streak},
	}
}

func nWords(n int) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			ID:       string(rune('a' + i%26)),
			English:  "word",
			Category: models.GeneralCategoryID,
		}
	}
	return words
}

func TestAnalyze_EmptyStore(t *testing.T) {
	r := report.Analyze(snapshotWith(nil, nil, nil, 0))

	assert.Equal(t, 0, r.Statistics.TotalWords)
	assert.Zero(t, r.Metrics.LearningRate)
	assert.Zero(t, r.Metrics.DifficultyRate)
	// No words and no difficulty still scores the 30-point retention term.
	assert.Equal(t, 30, r.Performance.Score)
	assert.Equal(t, "Developing", r.Performance.Level)
	assert.Empty(t, r.Milestones)
	assert.Equal(t, "Basic", r.Complexity.ComplexityLevel)
	assert.False(t, r.GeneratedAt.IsZero())
}

func TestAnalyze_Rates(t *testing.T) {
	words := nWords(3)
	r := report.Analyze(snapshotWith(words, []string{words[0].ID}, nil, 0))

	assert.Equal(t, 33.3, r.Metrics.LearningRate, "one decimal")
	assert.Equal(t, 3.0, r.Metrics.CategoryAverage)
}

func TestAnalyze_PerformanceScoreCaps(t *testing.T) {
	// 200 words, all learned, long streak, nothing difficult: every term
	// at its cap.
	words := nWords(200)
	learned := make([]string, len(words))
	for i, w := range words {
		learned[i] = w.ID
	}
	r := report.Analyze(snapshotWith(words, learned, nil, 30))

	assert.Equal(t, 100, r.Performance.Score)
	assert.Equal(t, "Expert", r.Performance.Level)
}

func TestAnalyze_PerformanceLevels(t *testing.T) {
	tests := []struct {
		name      string
		words     int
		streak    int
		wantLevel string
	}{
		{"no data", 0, 0, "Developing"},
		{"some words", 40, 5, "Advanced"},
		{"big collection with streak", 100, 10, "Advanced"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := report.Analyze(snapshotWith(nWords(tt.words), nil, nil, tt.streak))
			assert.Equal(t, tt.wantLevel, r.Performance.Level)
		})
	}
}

func TestAnalyze_CategoryDistributionRankedByCount(t *testing.T) {
	snap := store.Snapshot{
		Words: []models.Word{
			{ID: "1", English: "run", Category: "verbs"},
			{ID: "2", English: "jump", Category: "verbs"},
			{ID: "3", English: "book", Category: models.GeneralCategoryID},
		},
		Categories: []models.Category{
			{ID: models.GeneralCategoryID, Name: "General"},
			{ID: "verbs", Name: "Verbs"},
		},
	}
	r := report.Analyze(snap)

	require.Len(t, r.CategoryDistribution, 2)
	assert.Equal(t, "Verbs", r.CategoryDistribution[0].Name)
	assert.Equal(t, 2, r.CategoryDistribution[0].WordCount)
	assert.Equal(t, 66.7, r.CategoryDistribution[0].Percentage)
	assert.Equal(t, "General", r.CategoryDistribution[1].Name)
}

func TestAnalyze_Complexity(t *testing.T) {
	snap := snapshotWith([]models.Word{
		{English: "cat"},         // short
		{English: "elephant"},    // medium
		{English: "complicated"}, // long
	}, nil, nil, 0)
	r := report.Analyze(snap)

	assert.Equal(t, 1, r.Complexity.ShortWords)
	assert.Equal(t, 1, r.Complexity.MediumWords)
	assert.Equal(t, 1, r.Complexity.LongWords)
	// (3 + 8 + 11) / 3 = 7.3
	assert.Equal(t, 7.3, r.Complexity.AverageWordLength)
	assert.Equal(t, "Advanced", r.Complexity.ComplexityLevel)
}

func TestAnalyze_Milestones(t *testing.T) {
	words := nWords(12)
	learned := make([]string, 10)
	for i := range learned {
		learned[i] = words[i].ID
	}
	r := report.Analyze(snapshotWith(words, learned, nil, 3))

	assert.Contains(t, r.Milestones, "Added 10+ words")
	assert.Contains(t, r.Milestones, "Learned 10+ words")
	assert.Contains(t, r.Milestones, "3-day streak")
	assert.NotContains(t, r.Milestones, "Week warrior")
}

func TestAnalyze_RecommendationsThresholds(t *testing.T) {
	r := report.Analyze(snapshotWith(nil, nil, nil, 0))

	categories := map[string]bool{}
	for _, rec := range r.Recommendations {
		categories[rec.Category] = true
	}
	assert.True(t, categories["Learning Pace"])
	assert.True(t, categories["Practice Consistency"])
	assert.True(t, categories["Vocabulary Expansion"])
	assert.True(t, categories["Organization"])
	assert.False(t, categories["Difficulty Management"], "no difficult words yet")
}
