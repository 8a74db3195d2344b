package quiz

import (
	"math"
	"math/rand"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/models"
)

// Phase is the quiz mode chosen before a session starts.
type Phase string

const (
	PhaseMixed            Phase = "mixed"
	PhaseTurkishToEnglish Phase = "turkish-to-english-only"
	PhaseEnglishToTurkish Phase = "english-to-turkish-only"
	PhaseWriting          Phase = "writing-only"
	PhaseAudio            Phase = "audio-only"
)

// QuestionType is the kind of a single generated question.
type QuestionType string

const (
	QuestionTurkishToEnglish QuestionType = "turkish-to-english"
	QuestionEnglishToTurkish QuestionType = "english-to-turkish"
	QuestionWriting          QuestionType = "writing"
	QuestionAudio            QuestionType = "audio"
)

// QuestionTypes maps a phase to the question types it asks per word.
func (p Phase) QuestionTypes() ([]QuestionType, bool) {
	switch p {
	case PhaseMixed:
		return []QuestionType{QuestionTurkishToEnglish, QuestionEnglishToTurkish, QuestionWriting, QuestionAudio}, true
	case PhaseTurkishToEnglish:
		return []QuestionType{QuestionTurkishToEnglish}, true
	case PhaseEnglishToTurkish:
		return []QuestionType{QuestionEnglishToTurkish}, true
	case PhaseWriting:
		return []QuestionType{QuestionWriting}, true
	case PhaseAudio:
		return []QuestionType{QuestionAudio}, true
	default:
		return nil, false
	}
}

// State of a session.
type State int

const (
	Idle State = iota
	InProgress
	Completed
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Completed:
		return "completed"
	default:
		return "idle"
	}
}

// Speaker is the text-to-speech collaborator. Calls are fire-and-forget;
// the engine never waits on playback.
type Speaker interface {
	Speak(text string)
}

// NopSpeaker discards speech requests.
type NopSpeaker struct{}

func (NopSpeaker) Speak(string) {}

type planEntry struct {
	WordIndex int          `json:"word_index"`
	Type      QuestionType `json:"type"`
}

// Question is one rendered step of a session. Options are fixed when the
// question is materialized, so answer checking is stable across renders.
type Question struct {
	Number     int          `json:"number"` // 1-based
	Total      int          `json:"total"`
	Type       QuestionType `json:"type"`
	WordID     string       `json:"word_id"`
	Prompt     string       `json:"prompt"`
	SpokenText string       `json:"spoken_text,omitempty"` // audio questions only
	Options    []string     `json:"options,omitempty"`     // multiple-choice types only

	correct string // the answer Submit scores against
}

// Result reports the outcome of one submitted answer.
type Result struct {
	Correct       bool        `json:"correct"`
	CorrectAnswer string      `json:"correct_answer"`
	Word          models.Word `json:"word"`
}

// Summary is the terminal state of a completed or abandoned session.
type Summary struct {
	CorrectCount   int           `json:"correct_count"`
	TotalQuestions int           `json:"total_questions"`
	Percentage     int           `json:"percentage"`
	Words          []models.Word `json:"words"`
}

// Session is the quiz state machine. It is not safe for concurrent use;
// the Manager serializes access to the single active session.
type Session struct {
	words   []models.Word
	pool    []models.Word // candidates for distractors, selected words included
	phase   Phase
	plan    []planEntry
	cursor  int
	correct int
	state   State

	rng     *rand.Rand
	speaker Speaker
	current *Question
}

// NewSession builds a randomized question plan over the selected words.
// The caller supplies the distractor pool (normally the whole store) and
// the randomness source, so plans are reproducible under a seeded rng.
// An empty selection is rejected; any larger minimum is caller policy.
func NewSession(selected []models.Word, pool []models.Word, phase Phase, rng *rand.Rand, speaker Speaker) (*Session, error) {
	if len(selected) == 0 {
		return nil, errors.NewValidationError("words", "at least one word is required")
	}
	types, ok := phase.QuestionTypes()
	if !ok {
		return nil, errors.NewValidationError("phase", "unknown quiz phase")
	}
	if speaker == nil {
		speaker = NopSpeaker{}
	}

	plan := make([]planEntry, 0, len(selected)*len(types))
	for wordIndex := range selected {
		for _, t := range types {
			plan = append(plan, planEntry{WordIndex: wordIndex, Type: t})
		}
	}
	shuffle(rng, plan)

	return &Session{
		words:   append([]models.Word(nil), selected...),
		pool:    append([]models.Word(nil), pool...),
		phase:   phase,
		plan:    plan,
		rng:     rng,
		speaker: speaker,
		state:   InProgress,
	}, nil
}

func (s *Session) State() State        { return s.state }
func (s *Session) Phase() Phase        { return s.phase }
func (s *Session) TotalQuestions() int { return len(s.plan) }
func (s *Session) CorrectCount() int   { return s.correct }

// Words returns the session's word selection, for post-quiz marking.
func (s *Session) Words() []models.Word {
	return append([]models.Word(nil), s.words...)
}

// CurrentQuestion materializes the question at the cursor, generating and
// fixing its options on first call. Returns false once the plan is
// exhausted, at which point the session is Completed.
func (s *Session) CurrentQuestion() (*Question, bool) {
	if s.state != InProgress {
		return nil, false
	}
	if s.cursor >= len(s.plan) {
		s.complete()
		return nil, false
	}
	if s.current == nil {
		s.current = s.buildQuestion(s.plan[s.cursor])
	}
	return s.current, true
}

func (s *Session) buildQuestion(entry planEntry) *Question {
	word := s.words[entry.WordIndex]
	q := &Question{
		Number: s.cursor + 1,
		Total:  len(s.plan),
		Type:   entry.Type,
		WordID: word.ID,
	}

	switch entry.Type {
	case QuestionTurkishToEnglish:
		q.Prompt = word.Turkish
		q.correct = word.English
		q.Options = s.buildOptions(word, FieldEnglish, word.English)
	case QuestionEnglishToTurkish:
		q.Prompt = word.English
		q.correct = word.Turkish
		q.Options = s.buildOptions(word, FieldTurkish, word.Turkish)
	case QuestionWriting:
		q.Prompt = word.Turkish
		q.correct = word.English
	case QuestionAudio:
		q.SpokenText = word.English
		q.correct = word.Turkish
		q.Options = s.buildOptions(word, FieldTurkish, word.Turkish)
		// The prompt is spoken, not shown.
		s.speaker.Speak(word.English)
	}
	return q
}

func (s *Session) buildOptions(target models.Word, field Field, correct string) []string {
	others := make([]models.Word, 0, len(s.pool))
	for _, w := range s.pool {
		if w.ID != target.ID {
			others = append(others, w)
		}
	}
	options := append([]string{correct}, Distractors(s.rng, others, field, correct, 3)...)
	shuffle(s.rng, options)
	return options
}

// SubmitAnswer scores the answer for the current question, pronounces the
// correct answer, and advances the cursor. Multiple-choice and written
// answers both go through the fuzzy matcher.
func (s *Session) SubmitAnswer(answer string) (*Result, error) {
	q, ok := s.CurrentQuestion()
	if !ok {
		return nil, errors.NewBadRequestError("no question awaiting an answer")
	}

	result := &Result{
		Correct:       Match(answer, q.correct),
		CorrectAnswer: q.correct,
		Word:          s.words[s.plan[s.cursor].WordIndex],
	}
	if result.Correct {
		s.correct++
	}

	s.speaker.Speak(q.correct)

	s.cursor++
	s.current = nil
	if s.cursor >= len(s.plan) {
		s.complete()
	}
	return result, nil
}

func (s *Session) complete() {
	s.state = Completed
	s.current = nil
}

// Exit abandons the session, discarding plan, cursor, and score.
func (s *Session) Exit() {
	s.state = Idle
	s.plan = nil
	s.cursor = 0
	s.correct = 0
	s.current = nil
}

// Percentage is the rounded score so far. The plan can never be empty for
// a started session, but the zero guard keeps the math total.
func (s *Session) Percentage() int {
	if len(s.plan) == 0 {
		return 0
	}
	return int(math.Round(float64(s.correct) / float64(len(s.plan)) * 100))
}

// Summary reports the final numbers.
func (s *Session) Summary() Summary {
	return Summary{
		CorrectCount:   s.correct,
		TotalQuestions: len(s.plan),
		Percentage:     s.Percentage(),
		Words:          s.Words(),
	}
}
