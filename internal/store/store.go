package store

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ecetin/vocabmaster/internal/errors"
	"github.com/ecetin/vocabmaster/internal/logger"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/storage"
)

// Blob names under which the store round-trips its state.
const (
	keyWords         = "vocabulary:words"
	keyCategories    = "vocabulary:categories"
	keyNotes         = "vocabulary:notes"
	keyLearned       = "vocabulary:learned_words"
	keyFavorites     = "vocabulary:favorite_words"
	keyDifficult     = "vocabulary:difficult_words"
	keyDailyPractice = "vocabulary:daily_practice"
	keyPreferences   = "vocabulary:preferences"
)

// WordStore owns the word collection, categories, notes, the three
// membership sets, and the daily practice record. All state lives in
// memory; every mutation writes the affected blobs through the KV
// collaborator. A failed write is reported but never rolls back the
// in-memory mutation, so memory stays authoritative for the session.
type WordStore struct {
	mu sync.RWMutex
	kv storage.KV

	words      []models.Word
	categories []models.Category
	notes      []models.Note

	// Membership is canonically a set. The sets are serialized as sorted
	// id slices for a stable wire form.
	learned   map[string]struct{}
	favorites map[string]struct{}
	difficult map[string]struct{}

	practice models.DailyPractice
	prefs    models.Preferences
}

func New(kv storage.KV, dailyGoal int) *WordStore {
	return &WordStore{
		kv: kv,
		categories: []models.Category{{
			ID:          models.GeneralCategoryID,
			Name:        "General",
			Description: "General vocabulary words",
		}},
		learned:   map[string]struct{}{},
		favorites: map[string]struct{}{},
		difficult: map[string]struct{}{},
		practice:  models.DailyPractice{Goal: dailyGoal},
		prefs:     models.Preferences{Theme: "white", DailyGoal: dailyGoal},
	}
}

// Load reads every blob from the KV collaborator. Missing blobs are a
// first run and keep their defaults. A malformed blob is reported as a
// PERSISTENCE_ERROR while the rest of the state still loads; the store
// stays usable either way.
func (s *WordStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	var firstErr error
	loadBlob := func(key string, into any) {
		raw, ok, err := s.kv.Get(ctx, key)
		if err != nil {
			log.Error("failed to load %s: %v", key, err)
			if firstErr == nil {
				firstErr = errors.NewPersistenceError("read", err)
			}
			return
		}
		if !ok {
			log.Debug("no saved data for %s", key)
			return
		}
		if err := json.Unmarshal([]byte(raw), into); err != nil {
			log.Error("corrupt blob %s: %v", key, err)
			if firstErr == nil {
				firstErr = errors.NewPersistenceError("decode", err)
			}
		}
	}

	loadBlob(keyWords, &s.words)
	var categories []models.Category
	loadBlob(keyCategories, &categories)
	if len(categories) > 0 {
		s.categories = categories
	}
	loadBlob(keyNotes, &s.notes)

	var learned, favorites, difficult []string
	loadBlob(keyLearned, &learned)
	loadBlob(keyFavorites, &favorites)
	loadBlob(keyDifficult, &difficult)
	s.learned = toSet(learned)
	s.favorites = toSet(favorites)
	s.difficult = toSet(difficult)

	loadBlob(keyDailyPractice, &s.practice)
	loadBlob(keyPreferences, &s.prefs)

	s.ensureGeneralCategory()
	s.refreshCategoryCounts()
	log.Info("store loaded: %d words, %d categories, %d notes", len(s.words), len(s.categories), len(s.notes))
	return firstErr
}

// AddWord validates and appends a new word with a fresh id.
// The returned word is in the store even when a persistence error is
// returned alongside it.
func (s *WordStore) AddWord(ctx context.Context, fields models.WordFields) (*models.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	english := strings.TrimSpace(fields.English)
	turkish := strings.TrimSpace(fields.Turkish)
	if english == "" {
		return nil, errors.NewValidationError("english", "required")
	}
	if turkish == "" {
		return nil, errors.NewValidationError("turkish", "required")
	}
	if s.findByEnglish(english) != nil {
		log.Debug("duplicate word rejected: %s", english)
		return nil, errors.NewDuplicateWordError(english)
	}

	category := fields.Category
	if category == "" || s.findCategory(category) == nil {
		category = models.GeneralCategoryID
	}

	word := models.Word{
		ID:                uuid.NewString(),
		English:           english,
		Turkish:           turkish,
		PartOfSpeech:      fields.PartOfSpeech,
		Level:             fields.Level,
		IsPhrasalVerb:     fields.IsPhrasalVerb,
		Definition:        strings.TrimSpace(fields.Definition),
		TurkishDefinition: strings.TrimSpace(fields.TurkishDefinition),
		Synonyms:          cleanList(fields.Synonyms),
		Antonyms:          cleanList(fields.Antonyms),
		Examples:          cleanList(fields.Examples),
		Category:          category,
		Image:             fields.Image,
		DateAdded:         time.Now(),
	}
	s.words = append(s.words, word)
	s.refreshCategoryCounts()
	log.Debug("word added: id=%s, english=%s", word.ID, word.English)

	return &word, s.saveWords(ctx)
}

// EditWord updates mutable fields in place. The id never changes.
func (s *WordStore) EditWord(ctx context.Context, id string, fields models.WordFields) (*models.Word, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, errors.NewNotFoundError("word", id)
	}

	english := strings.TrimSpace(fields.English)
	turkish := strings.TrimSpace(fields.Turkish)
	if english == "" {
		return nil, errors.NewValidationError("english", "required")
	}
	if turkish == "" {
		return nil, errors.NewValidationError("turkish", "required")
	}
	if other := s.findByEnglish(english); other != nil && other.ID != id {
		return nil, errors.NewDuplicateWordError(english)
	}

	w := &s.words[idx]
	w.English = english
	w.Turkish = turkish
	w.PartOfSpeech = fields.PartOfSpeech
	w.Level = fields.Level
	w.IsPhrasalVerb = fields.IsPhrasalVerb
	w.Definition = strings.TrimSpace(fields.Definition)
	w.TurkishDefinition = strings.TrimSpace(fields.TurkishDefinition)
	w.Synonyms = cleanList(fields.Synonyms)
	w.Antonyms = cleanList(fields.Antonyms)
	w.Examples = cleanList(fields.Examples)
	if fields.Category != "" && s.findCategory(fields.Category) != nil {
		w.Category = fields.Category
	}
	if fields.Image != "" {
		w.Image = fields.Image
	}
	s.refreshCategoryCounts()
	log.Debug("word edited: id=%s", id)

	updated := *w
	return &updated, s.saveWords(ctx)
}

// DeleteWord removes the word and prunes it from all membership sets.
func (s *WordStore) DeleteWord(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	idx := s.indexOf(id)
	if idx < 0 {
		return errors.NewNotFoundError("word", id)
	}
	s.words = append(s.words[:idx], s.words[idx+1:]...)
	delete(s.learned, id)
	delete(s.favorites, id)
	delete(s.difficult, id)
	s.refreshCategoryCounts()
	log.Debug("word deleted: id=%s", id)

	if err := s.saveWords(ctx); err != nil {
		return err
	}
	return s.saveMembership(ctx)
}

// CreateCategory adds a category with a fresh id. Names are unique
// case-insensitively.
func (s *WordStore) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "required")
	}
	for _, c := range s.categories {
		if strings.EqualFold(c.Name, name) {
			return nil, errors.NewDuplicateCategoryError(name)
		}
	}
	if description = strings.TrimSpace(description); description == "" {
		description = "Custom category"
	}

	category := models.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
	}
	s.categories = append(s.categories, category)
	log.Debug("category created: id=%s, name=%s", category.ID, category.Name)

	return &category, s.saveCategories(ctx)
}

// DeleteCategory removes a category, reassigning its words to general.
// The general category itself is protected.
func (s *WordStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	if id == models.GeneralCategoryID {
		return errors.NewProtectedCategoryError(id)
	}
	if s.findCategory(id) == nil {
		return errors.NewNotFoundError("category", id)
	}

	for i := range s.words {
		if s.words[i].Category == id {
			s.words[i].Category = models.GeneralCategoryID
		}
	}
	kept := s.categories[:0]
	for _, c := range s.categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.categories = kept
	s.refreshCategoryCounts()
	log.Debug("category deleted: id=%s", id)

	if err := s.saveCategories(ctx); err != nil {
		return err
	}
	return s.saveWords(ctx)
}

// Membership toggles. Unknown word ids are rejected with NOT_FOUND so a
// stale id can never linger in a set. Each toggle reports the resulting
// membership state.

func (s *WordStore) ToggleLearned(ctx context.Context, id string) (bool, error) {
	return s.toggle(ctx, id, s.learnedSet)
}

func (s *WordStore) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	return s.toggle(ctx, id, s.favoriteSet)
}

func (s *WordStore) ToggleDifficult(ctx context.Context, id string) (bool, error) {
	return s.toggle(ctx, id, s.difficultSet)
}

func (s *WordStore) learnedSet() map[string]struct{}   { return s.learned }
func (s *WordStore) favoriteSet() map[string]struct{}  { return s.favorites }
func (s *WordStore) difficultSet() map[string]struct{} { return s.difficult }

func (s *WordStore) toggle(ctx context.Context, id string, pick func() map[string]struct{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return false, errors.NewNotFoundError("word", id)
	}
	set := pick()
	var member bool
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
		member = true
	}
	return member, s.saveMembership(ctx)
}

// SetMembership forces a word's membership in one of the three sets,
// used by post-quiz word marking.
func (s *WordStore) SetMembership(ctx context.Context, id string, learned, favorite, difficult *bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		return errors.NewNotFoundError("word", id)
	}
	apply := func(set map[string]struct{}, want *bool) {
		if want == nil {
			return
		}
		if *want {
			set[id] = struct{}{}
		} else {
			delete(set, id)
		}
	}
	apply(s.learned, learned)
	apply(s.favorites, favorite)
	apply(s.difficult, difficult)
	return s.saveMembership(ctx)
}

// Queries

func (s *WordStore) Words() []models.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Word(nil), s.words...)
}

func (s *WordStore) WordByID(id string) (*models.Word, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.indexOf(id); idx >= 0 {
		w := s.words[idx]
		return &w, nil
	}
	return nil, errors.NewNotFoundError("word", id)
}

func (s *WordStore) WordsByCategory(id string) []models.Word {
	return s.WordsMatching(func(w models.Word) bool { return w.Category == id })
}

// WordsMatching runs pred under the store's read lock. The predicate
// must not call back into the store: a queued writer would block the
// nested read and deadlock it. Membership filtering goes through
// FilterWords instead.
func (s *WordStore) WordsMatching(pred func(models.Word) bool) []models.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Word
	for _, w := range s.words {
		if pred(w) {
			out = append(out, w)
		}
	}
	return out
}

// FilterWords returns the words matching an optional category, membership
// filter ("learned", "favorite", "difficult") and case-insensitive search
// text, all evaluated under a single read lock.
func (s *WordStore) FilterWords(category, filter, search string) []models.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var members map[string]struct{}
	switch filter {
	case "learned":
		members = s.learned
	case "favorite":
		members = s.favorites
	case "difficult":
		members = s.difficult
	}

	search = strings.ToLower(search)
	var out []models.Word
	for _, w := range s.words {
		if category != "" && w.Category != category {
			continue
		}
		if members != nil {
			if _, ok := members[w.ID]; !ok {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(w.English), search) &&
			!strings.Contains(strings.ToLower(w.Turkish), search) {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (s *WordStore) LearnedWords() []models.Word   { return s.FilterWords("", "learned", "") }
func (s *WordStore) FavoriteWords() []models.Word  { return s.FilterWords("", "favorite", "") }
func (s *WordStore) DifficultWords() []models.Word { return s.FilterWords("", "difficult", "") }

func (s *WordStore) IsLearned(id string) bool   { return s.inSet(id, s.learnedSet) }
func (s *WordStore) IsFavorite(id string) bool  { return s.inSet(id, s.favoriteSet) }
func (s *WordStore) IsDifficult(id string) bool { return s.inSet(id, s.difficultSet) }

func (s *WordStore) inSet(id string, pick func() map[string]struct{}) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := pick()[id]
	return ok
}

func (s *WordStore) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *WordStore) CategoryName(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c := s.findCategory(id); c != nil {
		return c.Name
	}
	return "General"
}

// Notes

func (s *WordStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Note(nil), s.notes...)
}

func (s *WordStore) AddNote(ctx context.Context, title, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return nil, errors.NewValidationError("title", "required")
	}
	if content == "" {
		return nil, errors.NewValidationError("content", "required")
	}

	note := models.Note{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		DateCreated: time.Now(),
	}
	s.notes = append(s.notes, note)
	return &note, s.saveNotes(ctx)
}

func (s *WordStore) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.notes[:0]
	found := false
	for _, n := range s.notes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return errors.NewNotFoundError("note", id)
	}
	s.notes = kept
	return s.saveNotes(ctx)
}

// Daily practice and preferences

func (s *WordStore) DailyPractice() models.DailyPractice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.practice
}

func (s *WordStore) SetDailyPractice(ctx context.Context, dp models.DailyPractice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.practice = dp
	return s.saveBlob(ctx, keyDailyPractice, dp)
}

func (s *WordStore) Preferences() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

func (s *WordStore) SetPreferences(ctx context.Context, p models.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = p
	return s.saveBlob(ctx, keyPreferences, p)
}

// Snapshot returns consistent copies of everything a read-side consumer
// (reports, export) needs.
func (s *WordStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Words:      append([]models.Word(nil), s.words...),
		Categories: append([]models.Category(nil), s.categories...),
		Notes:      append([]models.Note(nil), s.notes...),
		Learned:    sortedIDs(s.learned),
		Favorites:  sortedIDs(s.favorites),
		Difficult:  sortedIDs(s.difficult),
		Practice:   s.practice,
		Prefs:      s.prefs,
	}
}

type Snapshot struct {
	Words      []models.Word
	Categories []models.Category
	Notes      []models.Note
	Learned    []string
	Favorites  []string
	Difficult  []string
	Practice   models.DailyPractice
	Prefs      models.Preferences
}

// Merge applies an imported data set: words deduped by lowercase english
// with fresh ids, categories deduped by name, notes always appended with
// fresh ids. Returns the number of words added.
func (s *WordStore) Merge(ctx context.Context, words []models.Word, categories []models.Category, notes []models.Note) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	log := logger.FromContext(ctx).WithPrefix("store")

	for _, c := range categories {
		exists := false
		for _, have := range s.categories {
			if strings.EqualFold(have.Name, c.Name) {
				exists = true
				break
			}
		}
		if !exists {
			c.ID = uuid.NewString()
			s.categories = append(s.categories, c)
		}
	}

	added := 0
	for _, w := range words {
		if s.findByEnglish(w.English) != nil {
			continue
		}
		w.ID = uuid.NewString()
		if w.Category == "" || s.findCategory(w.Category) == nil {
			w.Category = models.GeneralCategoryID
		}
		if w.DateAdded.IsZero() {
			w.DateAdded = time.Now()
		}
		s.words = append(s.words, w)
		added++
	}

	for _, n := range notes {
		n.ID = uuid.NewString()
		if n.DateCreated.IsZero() {
			n.DateCreated = time.Now()
		}
		s.notes = append(s.notes, n)
	}

	s.refreshCategoryCounts()
	log.Info("import merged: %d new words, %d categories, %d notes", added, len(categories), len(notes))

	if err := s.saveWords(ctx); err != nil {
		return added, err
	}
	if err := s.saveCategories(ctx); err != nil {
		return added, err
	}
	return added, s.saveNotes(ctx)
}

// internal helpers; callers hold the lock

func (s *WordStore) indexOf(id string) int {
	for i := range s.words {
		if s.words[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *WordStore) findByEnglish(english string) *models.Word {
	for i := range s.words {
		if strings.EqualFold(s.words[i].English, english) {
			return &s.words[i]
		}
	}
	return nil
}

func (s *WordStore) findCategory(id string) *models.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

func (s *WordStore) ensureGeneralCategory() {
	if s.findCategory(models.GeneralCategoryID) != nil {
		return
	}
	s.categories = append([]models.Category{{
		ID:          models.GeneralCategoryID,
		Name:        "General",
		Description: "General vocabulary words",
	}}, s.categories...)
}

func (s *WordStore) refreshCategoryCounts() {
	counts := map[string]int{}
	for _, w := range s.words {
		counts[w.Category]++
	}
	for i := range s.categories {
		s.categories[i].WordCount = counts[s.categories[i].ID]
	}
}

func (s *WordStore) saveWords(ctx context.Context) error {
	return s.saveBlob(ctx, keyWords, s.words)
}

func (s *WordStore) saveCategories(ctx context.Context) error {
	return s.saveBlob(ctx, keyCategories, s.categories)
}

func (s *WordStore) saveNotes(ctx context.Context) error {
	return s.saveBlob(ctx, keyNotes, s.notes)
}

func (s *WordStore) saveMembership(ctx context.Context) error {
	if err := s.saveBlob(ctx, keyLearned, sortedIDs(s.learned)); err != nil {
		return err
	}
	if err := s.saveBlob(ctx, keyFavorites, sortedIDs(s.favorites)); err != nil {
		return err
	}
	return s.saveBlob(ctx, keyDifficult, sortedIDs(s.difficult))
}

func (s *WordStore) saveBlob(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.NewPersistenceError("encode", err)
	}
	if err := s.kv.Set(ctx, key, string(raw)); err != nil {
		// No retry and no rollback: the in-memory state stays
		// authoritative for the rest of the session.
		logger.FromContext(ctx).Error("failed to persist %s: %v", key, err)
		return errors.NewPersistenceError("write", err)
	}
	return nil
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
