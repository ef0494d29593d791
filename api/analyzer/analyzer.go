/* analyzer.go
 * The progress analyzer turns a tournament roster plus a list of games into a
 * TournamentStatus: group membership, per-player scores and (once a group is
 * complete) the group winner. The rest of the system consumes the analyzer
 * through the Analyzer interface and treats its output as opaque; the standings
 * engine only re-derives ranks and head-to-head summaries from it
 */

package analyzer

import (
	"fmt"

	"tak-standings/api/shared"
)

// Analyzer is the collaborator contract the orchestrator depends on.
type Analyzer interface {
	// Analyze computes the tournament status for the given info and games.
	// Pure given its inputs; the result is the unit that gets cached.
	Analyze(info *shared.TournamentInfo, games []shared.GameResult) (*shared.TournamentStatus, error)

	// AdditionalGameIDs reports game ids that must be fetched individually
	// because they fall outside the primary games-history page.
	AdditionalGameIDs(info *shared.TournamentInfo) []int64
}

// GroupStage is the reference analyzer for group-stage tournaments: players
// are partitioned by their roster group label, wins score 2 and ties 1, and a
// group winner is declared once its double round robin is complete.
type GroupStage struct{}

var _ Analyzer = GroupStage{}

// AdditionalGameIDs surfaces the ids listed on the tournament info document.
func (GroupStage) AdditionalGameIDs(info *shared.TournamentInfo) []int64 {
	if info == nil {
		return nil
	}
	return info.ExtraGameIDs
}

// Analyze computes group-stage standings. Games involving players not on the
// roster, or players from different groups, are ignored.
func (GroupStage) Analyze(info *shared.TournamentInfo, games []shared.GameResult) (*shared.TournamentStatus, error) {
	if info == nil {
		return nil, fmt.Errorf("tournament info is nil")
	}

	groupOf := make(map[string]string, len(info.Players))
	var groupNames []string
	seenGroup := make(map[string]bool)
	for _, p := range info.Players {
		groupOf[p.Username] = p.Group
		if !seenGroup[p.Group] {
			seenGroup[p.Group] = true
			groupNames = append(groupNames, p.Group)
		}
	}

	players := make([]shared.StatusPlayer, len(info.Players))
	index := make(map[string]int, len(info.Players))
	for i, p := range info.Players {
		players[i] = shared.StatusPlayer{Username: p.Username, Group: p.Group}
		index[p.Username] = i
	}

	var tournamentGames []shared.GameResult
	gamesInGroup := make(map[string]int)
	for _, g := range games {
		wg, wok := groupOf[g.PlayerWhite]
		bg, bok := groupOf[g.PlayerBlack]
		if !wok || !bok || wg != bg {
			continue
		}
		tournamentGames = append(tournamentGames, g)
		gamesInGroup[wg]++

		wi := index[g.PlayerWhite]
		bi := index[g.PlayerBlack]
		players[wi].GamesPlayed++
		players[bi].GamesPlayed++

		switch {
		case IsWhiteWin(g.Result):
			players[wi].Score += 2
		case IsBlackWin(g.Result):
			players[bi].Score += 2
		case IsTie(g.Result):
			players[wi].Score++
			players[bi].Score++
		}
	}

	groups := make([]shared.Group, 0, len(groupNames))
	for _, name := range groupNames {
		groups = append(groups, decideGroup(name, players, gamesInGroup[name]))
	}

	return &shared.TournamentStatus{
		TournamentType: shared.TypeGroupStage,
		Groups:         groups,
		Players:        players,
		Games:          tournamentGames,
	}, nil
}

// decideGroup settles a group's winner. The playtak api serves mirrored games,
// so a complete group has every pairing played twice.
func decideGroup(name string, players []shared.StatusPlayer, gamesPlayed int) shared.Group {
	group := shared.Group{Name: name}

	var members []shared.StatusPlayer
	for _, p := range players {
		if p.Group == name {
			members = append(members, p)
		}
	}
	n := len(members)
	if n < 2 {
		return group
	}
	expected := n * (n - 1) // C(n,2) pairings, two games each
	if gamesPlayed < expected {
		return group
	}

	best := members[0].Score
	for _, p := range members[1:] {
		if p.Score > best {
			best = p.Score
		}
	}
	var leaders []string
	for _, p := range members {
		if p.Score == best {
			leaders = append(leaders, p.Username)
		}
	}

	group.Winner = leaders
	if len(leaders) == 1 {
		group.WinnerMethod = "score"
	} else {
		group.WinnerMethod = "tie"
	}
	return group
}
