/* fake_playtak_server.go
 * A fake playtak api plus roster host for tests, in the spirit of an httptest
 * stand-in for the real upstream. Fixtures are mutable per test and request
 * counters let tests assert on cache behaviour
 */

package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"tak-standings/api/shared"
)

type FakePlaytakServer struct {
	s *httptest.Server

	mu sync.Mutex
	// Games served from the games-history list endpoint.
	Games []shared.GameResult
	// GamesByID served from the single-game endpoint.
	GamesByID map[int64]shared.GameResult
	// RosterCSV served from /roster.csv.
	RosterCSV string

	// When set, the corresponding endpoint returns HTTP 500.
	FailList   bool
	FailGameID bool
	// When set, the list endpoint returns a structurally invalid body.
	MalformedList bool

	ListRequests   int
	GameRequests   int
	RosterRequests int
}

func NewFakePlaytakServer() *FakePlaytakServer {
	f := &FakePlaytakServer{
		GamesByID: make(map[int64]shared.GameResult),
	}

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Get("/games-history", f.listHandler)
		r.Get("/games-history/{gameID}", f.gameHandler)
	})
	r.Get("/roster.csv", f.rosterHandler)

	f.s = httptest.NewServer(r)
	return f
}

func (f *FakePlaytakServer) Close() {
	f.s.Close()
}

func (f *FakePlaytakServer) URL() string {
	return f.s.URL
}

// GamesURL is the list url a test should hand to the orchestrator; the
// response cache is keyed by this exact string.
func (f *FakePlaytakServer) GamesURL() string {
	return f.s.URL + "/v1/games-history?page=0&limit=100&type=Tournament&mirror=true"
}

func (f *FakePlaytakServer) RosterURL() string {
	return f.s.URL + "/roster.csv"
}

func (f *FakePlaytakServer) listHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListRequests++

	if f.FailList {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if f.MalformedList {
		w.Write([]byte(`{"unexpected": true}`))
		return
	}

	resp := shared.GameListResponse{
		Items:   f.Games,
		Page:    0,
		PerPage: 100,
		Total:   len(f.Games),
	}
	if resp.Items == nil {
		resp.Items = []shared.GameResult{}
	}
	json.NewEncoder(w).Encode(resp)
}

func (f *FakePlaytakServer) gameHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GameRequests++

	if f.FailGameID {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "gameID"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	game, ok := f.GamesByID[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(game)
}

func (f *FakePlaytakServer) rosterHandler(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RosterRequests++

	w.Header().Set("Content-Type", "text/csv")
	w.Write([]byte(f.RosterCSV))
}
