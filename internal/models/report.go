package models

import "time"

type ReportStatistics struct {
	TotalWords     int `json:"total_words"`
	LearnedWords   int `json:"learned_words"`
	FavoriteWords  int `json:"favorite_words"`
	DifficultWords int `json:"difficult_words"`
	Streak         int `json:"streak"`
	Categories     int `json:"categories"`
	Notes          int `json:"notes"`
}

type ReportMetrics struct {
	LearningRate    float64 `json:"learning_rate"`
	DifficultyRate  float64 `json:"difficulty_rate"`
	FavoriteRate    float64 `json:"favorite_rate"`
	CategoryAverage float64 `json:"category_average"`
}

type CategoryShare struct {
	Name       string  `json:"name"`
	WordCount  int     `json:"word_count"`
	Percentage float64 `json:"percentage"`
}

type Performance struct {
	Level               string   `json:"level"`
	Score               int      `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

type Recommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

type ComplexityAnalysis struct {
	AverageWordLength float64 `json:"average_word_length"`
	ShortWords        int     `json:"short_words"`
	MediumWords       int     `json:"medium_words"`
	LongWords         int     `json:"long_words"`
	ComplexityLevel   string  `json:"complexity_level"`
}

// Report is the full analysis snapshot, computed fresh on demand.
type Report struct {
	Statistics           ReportStatistics   `json:"statistics"`
	Metrics              ReportMetrics      `json:"metrics"`
	CategoryDistribution []CategoryShare    `json:"category_distribution"`
	Performance          Performance        `json:"performance"`
	Recommendations      []Recommendation   `json:"recommendations"`
	Complexity           ComplexityAnalysis `json:"complexity"`
	Milestones           []string           `json:"milestones"`
	GeneratedAt          time.Time          `json:"generated_at"`
}

// ReportRecord is one entry in the generated-report history.
type ReportRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generated_at"`
}
