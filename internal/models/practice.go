package models

// DailyPractice tracks calendar-day practice bookkeeping. LastPracticeDate
// is stored as "2006-01-02"; empty means no session has ever completed.
type DailyPractice struct {
	PracticedToday   int    `json:"practiced_today"`
	Goal             int    `json:"goal"`
	Streak           int    `json:"streak"`
	LastPracticeDate string `json:"last_practice_date"`
}

type Preferences struct {
	Theme     string `json:"theme"`
	DailyGoal int    `json:"daily_goal"`
	UserName  string `json:"user_name"`
}

// PronunciationResult is the outcome of one speech-recognition attempt.
type PronunciationResult struct {
	Target     string  `json:"target"`
	Spoken     string  `json:"spoken"`
	Accuracy   int     `json:"accuracy"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
