package practice

import "github.com/ecetin/vocabmaster/internal/quiz"

// Accuracy labels.
const (
	LabelExcellent     = "Excellent"
	LabelGood          = "Good"
	LabelFair          = "Fair"
	LabelNeedsPractice = "Needs Practice"
)

// PassThreshold is the accuracy at which a pronunciation attempt counts
// as successful.
const PassThreshold = 70

// PronunciationAccuracy scores a recognized transcript against the target
// word, 0-100, using Levenshtein similarity over normalized text.
func PronunciationAccuracy(target, spoken string) int {
	target = quiz.Normalize(target)
	spoken = quiz.Normalize(spoken)
	if target == "" && spoken == "" {
		return 0
	}
	if target == spoken {
		return 100
	}

	maxLen := len([]rune(target))
	if l := len([]rune(spoken)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 0
	}

	distance := levenshtein(target, spoken)
	similarity := float64(maxLen-distance) / float64(maxLen) * 100
	if similarity < 0 {
		return 0
	}
	return int(similarity + 0.5)
}

// AccuracyLabel buckets an accuracy score.
func AccuracyLabel(accuracy int) string {
	switch {
	case accuracy >= 90:
		return LabelExcellent
	case accuracy >= 75:
		return LabelGood
	case accuracy >= 60:
		return LabelFair
	default:
		return LabelNeedsPractice
	}
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			cost := 1
			if rb[i-1] == ra[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j-1]+cost, curr[j-1]+1, prev[j]+1)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
