package report

import (
	"math"
	"sort"
	"time"

	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/store"
)

// Analyze derives the full report from a store snapshot. Nothing here is
// persisted; every call computes fresh numbers.
func Analyze(snap store.Snapshot) models.Report {
	stats := models.ReportStatistics{
		TotalWords:     len(snap.Words),
		LearnedWords:   len(snap.Learned),
		FavoriteWords:  len(snap.Favorites),
		DifficultWords: len(snap.Difficult),
		Streak:         snap.Practice.Streak,
		Categories:     len(snap.Categories),
		Notes:          len(snap.Notes),
	}

	metrics := models.ReportMetrics{
		LearningRate:    rate(stats.LearnedWords, stats.TotalWords),
		DifficultyRate:  rate(stats.DifficultWords, stats.TotalWords),
		FavoriteRate:    rate(stats.FavoriteWords, stats.TotalWords),
		CategoryAverage: ratio(stats.TotalWords, stats.Categories),
	}

	return models.Report{
		Statistics:           stats,
		Metrics:              metrics,
		CategoryDistribution: categoryDistribution(snap, stats.TotalWords),
		Performance:          analyzePerformance(stats, metrics),
		Recommendations:      recommendations(stats, metrics),
		Complexity:           complexity(snap.Words),
		Milestones:           milestones(stats),
		GeneratedAt:          time.Now(),
	}
}

// rate is a one-decimal percentage, zero-safe.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func ratio(total, buckets int) float64 {
	if buckets == 0 {
		return 0
	}
	return round1(float64(total) / float64(buckets))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func categoryDistribution(snap store.Snapshot, totalWords int) []models.CategoryShare {
	counts := map[string]int{}
	for _, w := range snap.Words {
		counts[w.Category]++
	}
	shares := make([]models.CategoryShare, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		n := counts[c.ID]
		share := models.CategoryShare{Name: c.Name, WordCount: n}
		if totalWords > 0 {
			share.Percentage = round1(float64(n) / float64(totalWords) * 100)
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].WordCount > shares[j].WordCount
	})
	return shares
}

// analyzePerformance computes the 0-100 weighted score and its level.
// The four terms cap at 25+20+25+30 by construction.
func analyzePerformance(stats models.ReportStatistics, metrics models.ReportMetrics) models.Performance {
	score := 0.0
	score += math.Min(metrics.LearningRate, 25)
	score += math.Min(float64(stats.Streak)*2, 20)
	score += math.Min(float64(stats.TotalWords)*0.5, 25)
	score += math.Max(30-metrics.DifficultyRate, 0)

	level := "Beginner"
	switch {
	case score >= 80:
		level = "Expert"
	case score >= 60:
		level = "Advanced"
	case score >= 40:
		level = "Intermediate"
	case score >= 20:
		level = "Developing"
	}

	return models.Performance{
		Level:               level,
		Score:               int(math.Round(score)),
		Strengths:           strengths(stats, metrics),
		AreasForImprovement: weaknesses(stats, metrics),
	}
}

func strengths(stats models.ReportStatistics, metrics models.ReportMetrics) []string {
	var out []string
	if metrics.LearningRate > 70 {
		out = append(out, "Excellent learning completion rate")
	}
	if stats.Streak > 7 {
		out = append(out, "Consistent daily practice habit")
	}
	if stats.TotalWords > 100 {
		out = append(out, "Large vocabulary collection")
	}
	if metrics.DifficultyRate < 10 {
		out = append(out, "Good word retention")
	}
	if stats.Categories > 5 {
		out = append(out, "Well-organized vocabulary structure")
	}
	if stats.FavoriteWords > 20 {
		out = append(out, "Active engagement with preferred words")
	}
	if len(out) == 0 {
		out = append(out, "Starting your vocabulary learning journey")
	}
	return out
}

func weaknesses(stats models.ReportStatistics, metrics models.ReportMetrics) []string {
	var out []string
	if metrics.LearningRate < 30 {
		out = append(out, "Low word completion rate - focus on learning more words")
	}
	if stats.Streak < 3 {
		out = append(out, "Inconsistent practice - try to study daily")
	}
	if stats.TotalWords < 20 {
		out = append(out, "Small vocabulary size - add more words")
	}
	if metrics.DifficultyRate > 30 {
		out = append(out, "High difficulty rate - review challenging words more often")
	}
	if stats.Categories < 2 {
		out = append(out, "Limited organization - create more categories")
	}
	if stats.Notes < 5 {
		out = append(out, "Few notes - add more context to your learning")
	}
	return out
}

func recommendations(stats models.ReportStatistics, metrics models.ReportMetrics) []models.Recommendation {
	var out []models.Recommendation
	if metrics.LearningRate < 50 {
		out = append(out, models.Recommendation{
			Category:   "Learning Pace",
			Suggestion: "Focus on completing more words. Set a goal to learn 5-10 new words daily.",
			Priority:   "High",
		})
	}
	if stats.Streak < 7 {
		out = append(out, models.Recommendation{
			Category:   "Practice Consistency",
			Suggestion: "Build a daily learning habit. Even 10 minutes per day can significantly improve retention.",
			Priority:   "High",
		})
	}
	if metrics.DifficultyRate > 25 {
		out = append(out, models.Recommendation{
			Category:   "Difficulty Management",
			Suggestion: "Review difficult words more frequently. Use spaced repetition techniques.",
			Priority:   "Medium",
		})
	}
	if stats.TotalWords < 50 {
		out = append(out, models.Recommendation{
			Category:   "Vocabulary Expansion",
			Suggestion: "Expand your vocabulary by adding words from different topics and difficulty levels.",
			Priority:   "Medium",
		})
	}
	if stats.Categories < 3 {
		out = append(out, models.Recommendation{
			Category:   "Organization",
			Suggestion: "Create more categories to better organize your vocabulary by topics or themes.",
			Priority:   "Low",
		})
	}
	return out
}

func complexity(words []models.Word) models.ComplexityAnalysis {
	var total, short, medium, long int
	for _, w := range words {
		l := len([]rune(w.English))
		total += l
		switch {
		case l <= 5:
			short++
		case l <= 8:
			medium++
		default:
			long++
		}
	}

	var avg float64
	if len(words) > 0 {
		avg = round1(float64(total) / float64(len(words)))
	}
	level := "Basic"
	if avg > 7 {
		level = "Advanced"
	} else if avg > 5 {
		level = "Intermediate"
	}

	return models.ComplexityAnalysis{
		AverageWordLength: avg,
		ShortWords:        short,
		MediumWords:       medium,
		LongWords:         long,
		ComplexityLevel:   level,
	}
}

func milestones(stats models.ReportStatistics) []string {
	var out []string
	for _, m := range []struct {
		hit  bool
		text string
	}{
		{stats.TotalWords >= 10, "Added 10+ words"},
		{stats.TotalWords >= 50, "Added 50+ words"},
		{stats.TotalWords >= 100, "Word Collector (100+ words)"},
		{stats.LearnedWords >= 10, "Learned 10+ words"},
		{stats.LearnedWords >= 25, "Learning Star (25+ words)"},
		{stats.LearnedWords >= 50, "Vocabulary Master (50+ words)"},
		{stats.Streak >= 3, "3-day streak"},
		{stats.Streak >= 7, "Week warrior"},
		{stats.Streak >= 30, "Month champion"},
	} {
		if m.hit {
			out = append(out, m.text)
		}
	}
	return out
}
