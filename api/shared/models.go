/* models.go
 * This file contains the structs shared between sub packages: tournament info and
 * rosters, game results from the playtak api, and the tournament status shape
 * produced by the progress analyzer. Wire shapes carry a Validate method that is
 * called wherever data crosses a trust boundary (upstream responses, cached
 * payloads, admin-submitted documents)
 */

package shared

import (
	"fmt"
	"time"
)

// TournamentPlayer is one roster entry. Usernames are unique within a
// tournament once the roster has been supplemented.
type TournamentPlayer struct {
	Username string `json:"username" bson:"username"`
	Group    string `json:"group" bson:"group"`
}

// DateRange bounds a tournament. Bundled documents carry these as RFC 3339
// timestamps which decode directly into time.Time.
type DateRange struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// TournamentInfo is the metadata and roster for one tournament event. The
// resolver owns the loaded value; downstream components receive it read-only
// for the duration of one request.
type TournamentInfo struct {
	Name         string             `json:"name" bson:"name"`
	InfoURL      string             `json:"infoUrl" bson:"infoUrl"`
	DateRange    DateRange          `json:"dateRange" bson:"dateRange"`
	Players      []TournamentPlayer `json:"players" bson:"players"`
	ExtraGameIDs []int64            `json:"extra_game_ids,omitempty" bson:"extra_game_ids,omitempty"`
}

// Validate checks the TournamentInfo shape. A nil Players slice is invalid but
// an empty one is fine: rosters may be empty until supplemented.
func (t *TournamentInfo) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("tournament info missing name")
	}
	if t.DateRange.Start.IsZero() || t.DateRange.End.IsZero() {
		return fmt.Errorf("tournament info missing date range")
	}
	if t.DateRange.End.Before(t.DateRange.Start) {
		return fmt.Errorf("tournament date range ends before it starts")
	}
	if t.Players == nil {
		return fmt.Errorf("tournament info missing players list")
	}
	for i, p := range t.Players {
		if p.Username == "" {
			return fmt.Errorf("player %d has an empty username", i)
		}
	}
	return nil
}

// GameResult is one game as reported by the playtak api. Values are stored
// verbatim and never mutated.
type GameResult struct {
	ID          int64  `json:"id"`
	PlayerWhite string `json:"player_white"`
	PlayerBlack string `json:"player_black"`
	Result      string `json:"result"`
}

// Validate checks the single-game response shape.
func (g *GameResult) Validate() error {
	if g.ID == 0 {
		return fmt.Errorf("game result missing id")
	}
	if g.PlayerWhite == "" || g.PlayerBlack == "" {
		return fmt.Errorf("game %d missing player names", g.ID)
	}
	if g.Result == "" {
		return fmt.Errorf("game %d missing result", g.ID)
	}
	return nil
}

// GameListResponse is the paginated list-of-games response from the playtak
// games-history endpoint.
type GameListResponse struct {
	Items   []GameResult `json:"items"`
	Page    int          `json:"page"`
	PerPage int          `json:"perPage"`
	Total   int          `json:"total"`
}

// Validate checks the list response shape, including every contained game.
func (r *GameListResponse) Validate() error {
	if r.Items == nil {
		return fmt.Errorf("game list response missing items")
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// Tournament type tags used in TournamentStatus.
const (
	TypeGroupStage = "groupStage"
	TypeBracket    = "bracket"
)

// Group is one group of a group-stage tournament. Winner is nil while the
// group is undecided, a single username once won outright, or several
// usernames when the lead is shared.
type Group struct {
	Name         string   `json:"name"`
	Winner       []string `json:"winner,omitempty"`
	WinnerMethod string   `json:"winner_method,omitempty"`
}

// StatusPlayer is a player's aggregate standing as computed by the analyzer.
// Score and GamesPlayed decode to zero when absent, which matches the ranking
// rule that treats absent values as 0.
type StatusPlayer struct {
	Username    string `json:"username"`
	Group       string `json:"group"`
	Score       int    `json:"score"`
	GamesPlayed int    `json:"games_played"`
}

// TournamentStatus is the analyzer's output: a tagged variant over tournament
// shape. Only the group-stage variant carries groups, players and games.
type TournamentStatus struct {
	TournamentType string         `json:"tournamentType"`
	Groups         []Group        `json:"groups,omitempty"`
	Players        []StatusPlayer `json:"players,omitempty"`
	Games          []GameResult   `json:"games,omitempty"`
}

// Validate checks the status shape. Used when reading a cached status back so
// that a corrupt cache entry is treated as a miss rather than served.
func (s *TournamentStatus) Validate() error {
	if s.TournamentType == "" {
		return fmt.Errorf("tournament status missing type")
	}
	if s.TournamentType != TypeGroupStage {
		return nil
	}
	for i, g := range s.Groups {
		if g.Name == "" {
			return fmt.Errorf("group %d has an empty name", i)
		}
	}
	for i, p := range s.Players {
		if p.Username == "" {
			return fmt.Errorf("status player %d has an empty username", i)
		}
	}
	return nil
}

// IsGroupStage reports whether the status carries the group-stage variant.
func (s *TournamentStatus) IsGroupStage() bool {
	return s != nil && s.TournamentType == TypeGroupStage
}
