/* responses.go
 * Response bodies for the json routes
 */

package web

import (
	"tak-standings/api/logic"
	"tak-standings/api/shared"
)

type errorResponse struct {
	Error       string   `json:"error"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type tournamentListResponse struct {
	Tournaments []string `json:"tournaments"`
}

type tournamentResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	InfoURL string   `json:"infoUrl,omitempty"`
	Groups  []string `json:"groups,omitempty"`
}

type rankedPlayer struct {
	shared.StatusPlayer
	Rank int `json:"rank"`
}

type groupResponse struct {
	TournamentID string         `json:"tournamentId"`
	Index        int            `json:"index"`
	Name         string         `json:"name"`
	Winner       string         `json:"winner,omitempty"`
	TiedWinners  []string       `json:"tiedWinners,omitempty"`
	WinnerMethod string         `json:"winnerMethod,omitempty"`
	Players      []rankedPlayer `json:"players"`
}

type playerResponse struct {
	TournamentID string                   `json:"tournamentId"`
	GroupIndex   int                      `json:"groupIndex"`
	Player       shared.StatusPlayer      `json:"player"`
	Rank         int                      `json:"rank"`
	Games        []shared.GameResult      `json:"games"`
	Matchups     map[string]logic.Matchup `json:"matchups"`
}

type saveResponse struct {
	ID    string `json:"id"`
	Saved bool   `json:"saved"`
}

type copyResponse struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Copied      bool   `json:"copied"`
}
