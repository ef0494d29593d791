/* standings.go
 * Pure standings math over an analyzer-produced tournament status: per-group
 * ranking with tie handling, and pairwise head-to-head matchup scoring. No I/O
 * happens here; these functions are synchronous and deterministic
 */

package logic

import (
	"fmt"
	"sort"

	"tak-standings/api/analyzer"
	"tak-standings/api/shared"
)

// GroupStandings is the ranked view of one group.
type GroupStandings struct {
	Group   shared.Group          `json:"group"`
	Players []shared.StatusPlayer `json:"players"`
	Ranks   map[string]int        `json:"ranks"`
}

// Matchup is the head-to-head summary between the focal player and one
// opponent. Score is from the focal player's perspective.
type Matchup struct {
	Games         []shared.GameResult `json:"games"`
	Score         int                 `json:"score"`
	OpponentScore int                 `json:"opponentScore"`
}

// RankGroup filters the status players down to one group, sorts them by score
// then games played, and assigns competition ranks.
//
// Ranks are positional, not dense: a player whose score equals the previous
// player's inherits that player's rank, otherwise the rank is the 1-based
// position. Scores [10,10,8,5] rank as [1,1,3,4].
func RankGroup(status *shared.TournamentStatus, groupIndex int) (*GroupStandings, error) {
	if groupIndex < 0 {
		return nil, fmt.Errorf("%w: group index %d", shared.ErrInvalid, groupIndex)
	}
	if !status.IsGroupStage() {
		return nil, shared.ErrNotApplicable
	}
	if groupIndex >= len(status.Groups) {
		return nil, fmt.Errorf("%w: group index %d of %d groups", shared.ErrNotFound, groupIndex, len(status.Groups))
	}

	group := status.Groups[groupIndex]

	var players []shared.StatusPlayer
	for _, p := range status.Players {
		if p.Group == group.Name {
			players = append(players, p)
		}
	}

	// Stable so that players tied on both keys keep encounter order.
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Score != players[j].Score {
			return players[i].Score > players[j].Score
		}
		return players[i].GamesPlayed > players[j].GamesPlayed
	})

	ranks := make(map[string]int, len(players))
	for i, p := range players {
		if i > 0 && players[i-1].Score == p.Score {
			ranks[p.Username] = ranks[players[i-1].Username]
		} else {
			ranks[p.Username] = i + 1
		}
	}

	return &GroupStandings{Group: group, Players: players, Ranks: ranks}, nil
}

// ComputeMatchups builds the focal player's head-to-head summary against every
// other player in the group. Outcome classification comes from the analyzer's
// constant sets: a win scores 2 for the winning side, a tie scores 1 for both.
func ComputeMatchups(status *shared.TournamentStatus, groupPlayers []shared.StatusPlayer, focal string) map[string]Matchup {
	var focalGames []shared.GameResult
	for _, g := range status.Games {
		if g.PlayerWhite == focal || g.PlayerBlack == focal {
			focalGames = append(focalGames, g)
		}
	}

	matchups := make(map[string]Matchup, len(groupPlayers))
	for _, opponent := range groupPlayers {
		if opponent.Username == focal {
			continue
		}

		var games []shared.GameResult
		var score, opponentScore int
		for _, g := range focalGames {
			if g.PlayerWhite != opponent.Username && g.PlayerBlack != opponent.Username {
				continue
			}
			games = append(games, g)

			switch {
			case analyzer.IsWhiteWin(g.Result):
				if g.PlayerWhite == focal {
					score += 2
				} else {
					opponentScore += 2
				}
			case analyzer.IsBlackWin(g.Result):
				if g.PlayerBlack == focal {
					score += 2
				} else {
					opponentScore += 2
				}
			case analyzer.IsTie(g.Result):
				score++
				opponentScore++
			}
		}

		matchups[opponent.Username] = Matchup{
			Games:         games,
			Score:         score,
			OpponentScore: opponentScore,
		}
	}
	return matchups
}
