package backup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/store"
)

const appVersion = "1.0.0"

// Payload is the export file format. Import tolerates missing optional
// sections; only words is mandatory.
type Payload struct {
	Words          []models.Word        `json:"words"`
	Categories     []models.Category    `json:"categories,omitempty"`
	Notes          []models.Note        `json:"notes,omitempty"`
	DifficultWords []string             `json:"difficult_words,omitempty"`
	FavoriteWords  []string             `json:"favorite_words,omitempty"`
	LearnedWords   []string             `json:"learned_words,omitempty"`
	DailyPractice  models.DailyPractice `json:"daily_practice"`
	Preferences    models.Preferences   `json:"preferences"`
	ExportDate     time.Time            `json:"export_date"`
	AppVersion     string               `json:"app_version"`
}

// Export serializes the full data set as indented JSON.
func Export(snap store.Snapshot) ([]byte, error) {
	payload := Payload{
		Words:          snap.Words,
		Categories:     snap.Categories,
		Notes:          snap.Notes,
		DifficultWords: snap.Difficult,
		FavoriteWords:  snap.Favorites,
		LearnedWords:   snap.Learned,
		DailyPractice:  snap.Practice,
		Preferences:    snap.Prefs,
		ExportDate:     time.Now(),
		AppVersion:     appVersion,
	}
	return json.MarshalIndent(payload, "", "  ")
}

// Import parses raw file text and merges it into the store: words deduped
// by lowercase english, categories deduped by name, notes appended, every
// record under a fresh id. A malformed payload aborts the whole import
// with no partial merge.
func Import(ctx context.Context, s *store.WordStore, raw []byte) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("backup")

	// Probe the words field before binding the full payload, so a wrong
	// type surfaces as a format error rather than a partial decode.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0, errors.NewImportFormatError("not a JSON object")
	}
	wordsRaw, ok := probe["words"]
	if !ok {
		return 0, errors.NewImportFormatError("missing words field")
	}
	var words []models.Word
	if err := json.Unmarshal(wordsRaw, &words); err != nil {
		return 0, errors.NewImportFormatError("words is not an array of words")
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, errors.NewImportFormatError(err.Error())
	}

	log.Info("importing backup: %d words, %d categories, %d notes",
		len(payload.Words), len(payload.Categories), len(payload.Notes))
	return s.Merge(ctx, payload.Words, payload.Categories, payload.Notes)
}
