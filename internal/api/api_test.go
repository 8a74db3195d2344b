package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecetin/vocabmaster/internal/api"
	"github.com/ecetin/vocabmaster/internal/models"
	"github.com/ecetin/vocabmaster/internal/quiz"
	"github.com/ecetin/vocabmaster/internal/report"
	"github.com/ecetin/vocabmaster/internal/speech"
	"github.com/ecetin/vocabmaster/internal/storage"
	"github.com/ecetin/vocabmaster/internal/store"
	"github.com/ecetin/vocabmaster/internal/testutil"
)

func newTestServer(t *testing.T) (*httptest.Server, *store.WordStore) {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	words := store.New(storage.NewMemory(), 10)
	srv := &api.Server{
		Store:         words,
		Quizzes:       quiz.NewManager(quiz.NopSpeaker{}).WithSeed(42),
		Reports:       report.NewHistory(db),
		TTS:           speech.NewTTS(t.TempDir(), "en-US", 0.8),
		QuizMinWords:  5,
		SpeechTimeout: 10,
	}

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, words
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		decoded = nil
	}
	return resp, decoded
}

func seedWords(t *testing.T, s *store.WordStore, n int) []models.Word {
	t.Helper()
	pairs := [][2]string{
		{"book", "kitap"}, {"pen", "kalem"}, {"door", "kapı"},
		{"window", "pencere"}, {"tree", "ağaç"}, {"water", "su"},
	}
	out := make([]models.Word, 0, n)
	for i := 0; i < n; i++ {
		w, err := s.AddWord(context.Background(), models.WordFields{
			English: pairs[i][0], Turkish: pairs[i][1],
		})
		require.NoError(t, err)
		out = append(out, *w)
	}
	return out
}

func TestWordsEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/words",
		map[string]any{"english": "book", "turkish": "kitap"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/words", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/words",
		map[string]any{"english": "BOOK", "turkish": "defter"})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errObj, _ := body["error"].(map[string]any)
	require.NotNil(t, errObj)
	assert.Equal(t, "DUPLICATE_WORD", errObj["code"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/words/"+id+"/learned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["member"])

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/words/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/words/"+id, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	errObj, _ = body["error"].(map[string]any)
	require.NotNil(t, errObj)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestWordsEndpoints_MembershipFilter(t *testing.T) {
	ts, words := newTestServer(t)
	seeded := seedWords(t, words, 3)

	resp, _ := doJSON(t, http.MethodPost, ts.URL+"/api/words/"+seeded[0].ID+"/learned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/words?filter=learned", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, float64(1), body["count"])
	listed, _ := body["words"].([]any)
	require.Len(t, listed, 1)
	first, _ := listed[0].(map[string]any)
	assert.Equal(t, seeded[0].ID, first["id"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/words?filter=favorite", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), body["count"])
}

func TestCategoryEndpoints(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/categories",
		map[string]any{"name": "Verbs", "description": "Action words"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/categories/general", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/categories/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQuizFlow(t *testing.T) {
	ts, words := newTestServer(t)
	seedWords(t, words, 5)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/quiz/start",
		map[string]any{"phase": "mixed"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(20), body["total_questions"])
	require.NotNil(t, body["question"])

	completed := false
	for i := 0; i < 20; i++ {
		resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/quiz/answer",
			map[string]any{"answer": "wrong"})
		require.Equal(t, http.StatusOK, resp.StatusCode, "answer %d", i)
		if done, _ := body["completed"].(bool); done {
			completed = i == 19
			require.NotNil(t, body["summary"])
			practiceState, _ := body["practice"].(map[string]any)
			require.NotNil(t, practiceState)
			assert.Equal(t, float64(1), practiceState["streak"])
		}
	}
	assert.True(t, completed, "session completes on the last answer")

	// The completed session still reports its summary.
	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/quiz/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "completed", body["state"])

	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/quiz/exit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, ts.URL+"/api/quiz/question", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuizStart_MixedRequiresMinimumWords(t *testing.T) {
	ts, words := newTestServer(t)
	seedWords(t, words, 3)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/quiz/start",
		map[string]any{"phase": "mixed"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj, _ := body["error"].(map[string]any)
	require.NotNil(t, errObj)
	assert.Equal(t, "VALIDATION_ERROR", errObj["code"])

	// Focused phases have no such minimum.
	resp, _ = doJSON(t, http.MethodPost, ts.URL+"/api/quiz/start",
		map[string]any{"phase": "writing-only"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPronunciationEndpoint(t *testing.T) {
	ts, words := newTestServer(t)
	seeded := seedWords(t, words, 1)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/practice/pronunciation",
		map[string]any{"word_id": seeded[0].ID, "transcript": "book", "confidence": 0.92})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["recognized"])
	assert.Equal(t, true, body["passed"])
	result, _ := body["result"].(map[string]any)
	require.NotNil(t, result)
	assert.Equal(t, float64(100), result["accuracy"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/practice/pronunciation",
		map[string]any{"target": "book", "error": "no-speech"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["recognized"])
	assert.NotEmpty(t, body["guidance"])
}

func TestExportImportEndpoints(t *testing.T) {
	source, sourceWords := newTestServer(t)
	seedWords(t, sourceWords, 2)

	resp, err := http.Get(source.URL + "/api/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")

	var exported bytes.Buffer
	_, err = exported.ReadFrom(resp.Body)
	require.NoError(t, err)

	target, _ := newTestServer(t)
	importResp, err := http.Post(target.URL+"/api/import", "application/json", &exported)
	require.NoError(t, err)
	defer importResp.Body.Close()
	require.Equal(t, http.StatusOK, importResp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(importResp.Body).Decode(&body))
	assert.Equal(t, float64(2), body["imported"])
}

func TestReportEndpoints(t *testing.T) {
	ts, words := newTestServer(t)
	seedWords(t, words, 3)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/reports/analysis", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats, _ := body["statistics"].(map[string]any)
	require.NotNil(t, stats)
	assert.Equal(t, float64(3), stats["total_words"])

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/reports", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, body["filename"])

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/reports/history", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestPreferencesEndpoints(t *testing.T) {
	ts, words := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/preferences", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "white", body["theme"])

	resp, _ = doJSON(t, http.MethodPut, ts.URL+"/api/preferences",
		map[string]any{"theme": "dark", "daily_goal": 20, "user_name": "Ece"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "dark", words.Preferences().Theme)
	assert.Equal(t, 20, words.DailyPractice().Goal, "daily goal mirrors into the practice record")
}

func TestUnknownFieldsRejected(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/words",
		map[string]any{"english": "book", "turkish": "kitap", "bogus": 1})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errObj, _ := body["error"].(map[string]any)
	require.NotNil(t, errObj)
	assert.Equal(t, "BAD_REQUEST", errObj["code"])
}
