package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wanderly-app/pollsvc/internal/domain"
	"github.com/wanderly-app/pollsvc/internal/httpserver/deps"
	"github.com/wanderly-app/pollsvc/internal/kv"
	"github.com/wanderly-app/pollsvc/internal/logger"
	"github.com/wanderly-app/pollsvc/internal/poll"
	"github.com/wanderly-app/pollsvc/internal/sources/places"
	"github.com/wanderly-app/pollsvc/internal/store"
)

type testEnv struct {
	router chi.Router
	now    *time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New("error", false)
	s := kv.NewMemoryStore()
	engine := poll.NewEngine(store.NewFolderRepo(s, log), store.NewVoteLedger(s, log), log)

	catalog := places.NewCatalog()
	catalog.Replace([]domain.Place{
		{ID: "p1", Name: "Fushimi Inari", City: "Kyoto"},
		{ID: "p2", Name: "Dotonbori", City: "Osaka"},
	})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	env := &testEnv{now: &now}

	d := deps.Deps{
		Logger:        log,
		StartTime:     now,
		TimeNow:       func() time.Time { return *env.now },
		Engine:        engine,
		Catalog:       catalog,
		PublicURL:     "https://polls.example.com",
		ReloadTrigger: make(chan struct{}, 1),
	}

	r := chi.NewRouter()
	RegisterAll(r, d)
	env.router = r
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createFolder(t *testing.T) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/folders", map[string]interface{}{
		"name":     "Japan Trip",
		"placeIds": []string{"p1", "p2"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create folder status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID       string `json:"id"`
		ShareURL string `json:"shareUrl"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("create response has empty folder id")
	}
	if resp.ShareURL != "https://polls.example.com/vote/"+resp.ID {
		t.Errorf("shareUrl = %q", resp.ShareURL)
	}
	return resp.ID
}

func TestCreateAndGetFolder(t *testing.T) {
	env := newTestEnv(t)
	id := env.createFolder(t)

	w := env.do(t, http.MethodGet, "/api/folders/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get folder status = %d", w.Code)
	}

	var folder struct {
		Name      string            `json:"name"`
		Status    domain.PollStatus `json:"status"`
		Votes     map[string]int    `json:"votes"`
		Remaining *domain.Remaining `json:"remaining"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &folder); err != nil {
		t.Fatalf("failed to decode folder: %v", err)
	}
	if folder.Name != "Japan Trip" {
		t.Errorf("name = %q", folder.Name)
	}
	if folder.Status != domain.StatusOpen {
		t.Errorf("status = %v, want open", folder.Status)
	}
	if folder.Votes["p1"] != 0 || folder.Votes["p2"] != 0 {
		t.Errorf("votes = %+v, want zeros", folder.Votes)
	}
	if folder.Remaining == nil || folder.Remaining.Days != 5 {
		t.Errorf("remaining = %+v, want 5 days", folder.Remaining)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"empty name", map[string]interface{}{"name": "  ", "placeIds": []string{"p1"}}},
		{"no places", map[string]interface{}{"name": "Trip", "placeIds": []string{}}},
		{"unknown place", map[string]interface{}{"name": "Trip", "placeIds": []string{"p99"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/folders", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestGetFolderNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/folders/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestVoteFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.createFolder(t)

	*env.now = env.now.Add(time.Hour)

	w := env.do(t, http.MethodPost, "/api/folders/"+id+"/votes", map[string]string{"placeId": "p1"})
	if w.Code != http.StatusCreated {
		t.Fatalf("vote status = %d, body = %s", w.Code, w.Body.String())
	}

	// Second vote from the same deployment is rejected
	w = env.do(t, http.MethodPost, "/api/folders/"+id+"/votes", map[string]string{"placeId": "p2"})
	if w.Code != http.StatusConflict {
		t.Errorf("second vote status = %d, want 409", w.Code)
	}

	// Results reflect exactly one vote
	w = env.do(t, http.MethodGet, "/api/folders/"+id+"/results", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results status = %d", w.Code)
	}
	var results struct {
		TotalVotes int                          `json:"totalVotes"`
		Tally      map[string]domain.PlaceTally `json:"tally"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("failed to decode results: %v", err)
	}
	if results.TotalVotes != 1 {
		t.Errorf("totalVotes = %d, want 1", results.TotalVotes)
	}
	if results.Tally["p1"].Percent != 100 || results.Tally["p2"].Percent != 0 {
		t.Errorf("tally = %+v", results.Tally)
	}
}

func TestVoteErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	id := env.createFolder(t)

	// Unknown place
	w := env.do(t, http.MethodPost, "/api/folders/"+id+"/votes", map[string]string{"placeId": "p99"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid place status = %d, want 400", w.Code)
	}

	// Missing placeId
	w = env.do(t, http.MethodPost, "/api/folders/"+id+"/votes", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing placeId status = %d, want 400", w.Code)
	}

	// Unknown folder
	w = env.do(t, http.MethodPost, "/api/folders/nope/votes", map[string]string{"placeId": "p1"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown folder status = %d, want 404", w.Code)
	}

	// Ended poll
	*env.now = env.now.Add(domain.PollDuration + time.Second)
	w = env.do(t, http.MethodPost, "/api/folders/"+id+"/votes", map[string]string{"placeId": "p1"})
	if w.Code != http.StatusConflict {
		t.Errorf("ended poll status = %d, want 409", w.Code)
	}
}

func TestListFolders(t *testing.T) {
	env := newTestEnv(t)
	env.createFolder(t)

	w := env.do(t, http.MethodGet, "/api/folders", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list = %d folders, want 1", len(list))
	}
}

func TestPlacesEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/places", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("places status = %d", w.Code)
	}
	var catalog []domain.Place
	if err := json.Unmarshal(w.Body.Bytes(), &catalog); err != nil {
		t.Fatalf("failed to decode places: %v", err)
	}
	if len(catalog) != 2 {
		t.Errorf("places = %d, want 2", len(catalog))
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", w.Code)
	}
}

func TestReadyzWithoutRedis(t *testing.T) {
	env := newTestEnv(t)

	// nil Redis client: ready by definition (memory-backed test wiring)
	w := env.do(t, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("readyz status = %d, want 200", w.Code)
	}
}

func TestReloadTrigger(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/reload", nil)
	if w.Code != http.StatusAccepted {
		t.Errorf("reload status = %d, want 202", w.Code)
	}

	// Trigger channel full: second call reports in-progress
	w = env.do(t, http.MethodPost, "/api/reload", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second reload status = %d, want 429", w.Code)
	}
}
