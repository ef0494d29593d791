/* registry.go
 * Fixed registry of known tournaments. Each entry names an embedded bundled info
 * document plus the optional external sources for that tournament: a roster csv
 * url used to supplement an empty roster, and the playtak games-history url for
 * its results. Registry membership is checked before any storage tier is read
 */

package registry

import (
	"encoding/json"
	"fmt"
	"sort"

	"embed"

	"tak-standings/api/shared"
)

// DefaultGamesAPIURL is the playtak games-history page used when a registry
// entry does not configure its own. Cache correctness depends on this URL
// being constructed identically for equivalent requests, so it is a fixed
// constant rather than built per call.
const DefaultGamesAPIURL = "https://api.playtak.com/v1/games-history?page=0&limit=100&type=Tournament&mirror=true"

//go:embed tournaments
var bundled embed.FS

// Source is the immutable per-id configuration for a known tournament. It is
// never mutated at runtime.
type Source struct {
	InfoPath     string
	RosterCSVURL string
	GamesAPIURL  string
}

var knownTournaments = map[string]Source{
	"INTERMEDIATE_TOURNAMENT_NOV_2024": {
		InfoPath:     "tournaments/2024-11-16-intermediate-tournament.json",
		RosterCSVURL: "https://raw.githubusercontent.com/devp/project-tak-tourney-adhoc/refs/heads/main/data/2024-11-16-intermediate-tournament.players.csv",
		GamesAPIURL:  DefaultGamesAPIURL,
	},
	"BEGINNER_TOURNAMENT_JAN_2025": {
		InfoPath:    "tournaments/2025-01-17-beginner-tournament.json",
		GamesAPIURL: DefaultGamesAPIURL,
	},
}

// Known reports whether id is a registered tournament.
func Known(id string) bool {
	_, ok := knownTournaments[id]
	return ok
}

// Lookup returns the source configuration for id.
func Lookup(id string) (Source, bool) {
	s, ok := knownTournaments[id]
	return s, ok
}

// IDs returns every registered tournament id, sorted.
func IDs() []string {
	ids := make([]string, 0, len(knownTournaments))
	for id := range knownTournaments {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadInfo parses the bundled info document for id. A document that fails
// structural validation yields shared.ErrInvalid: bundled data is under our
// control, so a malformed document is a deployment defect, not a soft miss.
func LoadInfo(id string) (*shared.TournamentInfo, error) {
	src, ok := knownTournaments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}

	raw, err := bundled.ReadFile(src.InfoPath)
	if err != nil {
		return nil, fmt.Errorf("reading bundled info %s: %w", src.InfoPath, err)
	}

	var info shared.TournamentInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("%w: bundled info %s: %v", shared.ErrInvalid, src.InfoPath, err)
	}
	if err := info.Validate(); err != nil {
		return nil, fmt.Errorf("%w: bundled info %s: %v", shared.ErrInvalid, src.InfoPath, err)
	}
	return &info, nil
}
