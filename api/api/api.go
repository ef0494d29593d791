/* api.go
 * This file contains the public methods for interacting with this package. It
 * composes the resolver, the results fetcher, the progress analyzer and the two
 * TTL caches into the request flow: resolve info, serve a cached status when one
 * is live, otherwise fetch results (plus any analyzer-flagged supplemental game
 * ids), analyze, cache and return
 */

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/itbasis/go-clock"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/sync/errgroup"

	"tak-standings/api/analyzer"
	"tak-standings/api/cache"
	"tak-standings/api/external"
	"tak-standings/api/logic"
	"tak-standings/api/registry"
	"tak-standings/api/shared"
	"tak-standings/api/store"
	"tak-standings/api/tournament"
)

// API provides methods for interacting with the tournament standings data layer.
type API struct {
	Store    store.Interface
	Resolver *tournament.Resolver
	Fetcher  *external.Client
	Analyzer analyzer.Analyzer

	// StatusCache holds computed tournament status by tournament id. The
	// fetcher owns a second cache keyed by request url. Both are explicit
	// instances rather than ambient singletons so tests can inject fresh ones.
	StatusCache *cache.Cache[string, *shared.TournamentStatus]

	// GamesURL maps a tournament id to its games-history page url. Defaults
	// to the registry entry, falling back to the fixed default page.
	GamesURL func(id string) string
}

// TournamentData is the orchestrator's result: resolved info plus computed
// status.
type TournamentData struct {
	ID     string                   `json:"id"`
	Info   *shared.TournamentInfo   `json:"info"`
	Status *shared.TournamentStatus `json:"status"`
}

// PlayerMatchups is the head-to-head view for one player of a group.
type PlayerMatchups struct {
	Player   shared.StatusPlayer      `json:"player"`
	Rank     int                      `json:"rank"`
	Games    []shared.GameResult      `json:"games"`
	Matchups map[string]logic.Matchup `json:"matchups"`
}

// NewAPI creates a new API instance with the provided configuration.
func NewAPI(dbName string, mongoURI string, clk clock.Clock) (*API, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName is required")
	}

	s, err := store.NewStore(dbName, mongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	responses := cache.New[string, any](cache.DefaultTTL, clk)
	fetcher := external.NewClient(external.PlaytakURL, responses)

	return &API{
		Store:       s,
		Resolver:    tournament.NewResolver(s, fetcher),
		Fetcher:     fetcher,
		Analyzer:    analyzer.GroupStage{},
		StatusCache: cache.New[string, *shared.TournamentStatus](cache.DefaultTTL, clk),
		GamesURL:    RegistryGamesURL,
	}, nil
}

// RegistryGamesURL is the default GamesURL mapping.
func RegistryGamesURL(id string) string {
	if src, ok := registry.Lookup(id); ok && src.GamesAPIURL != "" {
		return src.GamesAPIURL
	}
	return registry.DefaultGamesAPIURL
}

// GetTournamentData resolves tournament info and returns it with the computed
// status, serving the status from cache when a live valid entry exists.
func (a *API) GetTournamentData(ctx context.Context, id string) (*TournamentData, error) {
	info, err := a.Resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	if cached, ok := a.StatusCache.Get(id); ok && cached.Validate() == nil {
		return &TournamentData{ID: id, Info: info, Status: cached}, nil
	}

	page, err := a.Fetcher.FetchGamesPage(ctx, a.GamesURL(id))
	if err != nil {
		return nil, fmt.Errorf("fetching results for %s: %w", id, err)
	}
	games := page.Items

	games = append(games, a.fetchAdditionalGames(ctx, info)...)

	status, err := a.Analyzer.Analyze(info, games)
	if err != nil {
		return nil, fmt.Errorf("analyzing tournament %s: %w", id, err)
	}

	a.StatusCache.Set(id, status)
	return &TournamentData{ID: id, Info: info, Status: status}, nil
}

// fetchAdditionalGames fetches the analyzer-flagged game ids that fall outside
// the primary page, concurrently and best-effort: a failed fetch drops that
// one game rather than aborting the request.
func (a *API) fetchAdditionalGames(ctx context.Context, info *shared.TournamentInfo) []shared.GameResult {
	ids := a.Analyzer.AdditionalGameIDs(info)
	if len(ids) == 0 {
		return nil
	}

	results := make([]*shared.GameResult, len(ids))
	var g errgroup.Group
	for i, gameID := range ids {
		g.Go(func() error {
			game, err := a.Fetcher.FetchGameByID(ctx, gameID)
			if err != nil {
				log.Printf("fetching additional game %d: %v", gameID, err)
				return nil
			}
			results[i] = game
			return nil
		})
	}
	g.Wait()

	var games []shared.GameResult
	for _, game := range results {
		if game != nil {
			games = append(games, *game)
		}
	}
	return games
}

// GetGroupStandings returns the ranked standings for one group of a
// tournament.
func (a *API) GetGroupStandings(ctx context.Context, id string, groupIndex int) (*logic.GroupStandings, error) {
	data, err := a.GetTournamentData(ctx, id)
	if err != nil {
		return nil, err
	}
	return logic.RankGroup(data.Status, groupIndex)
}

// GetPlayerMatchups returns one player's standing and head-to-head summaries
// within their group.
func (a *API) GetPlayerMatchups(ctx context.Context, id string, groupIndex int, username string) (*PlayerMatchups, error) {
	data, err := a.GetTournamentData(ctx, id)
	if err != nil {
		return nil, err
	}
	standings, err := logic.RankGroup(data.Status, groupIndex)
	if err != nil {
		return nil, err
	}

	var player *shared.StatusPlayer
	for i := range standings.Players {
		if standings.Players[i].Username == username {
			player = &standings.Players[i]
			break
		}
	}
	if player == nil {
		return nil, fmt.Errorf("%w: player %q in group %d", shared.ErrNotFound, username, groupIndex)
	}

	var games []shared.GameResult
	for _, g := range data.Status.Games {
		if g.PlayerWhite == username || g.PlayerBlack == username {
			games = append(games, g)
		}
	}

	return &PlayerMatchups{
		Player:   *player,
		Rank:     standings.Ranks[username],
		Games:    games,
		Matchups: logic.ComputeMatchups(data.Status, standings.Players, username),
	}, nil
}

// SaveTournamentInfo validates an admin-submitted info document and writes it
// to the authoritative store, then clears the whole status cache so no
// tournament serves standings computed from stale info.
func (a *API) SaveTournamentInfo(ctx context.Context, id string, raw []byte) error {
	var info shared.TournamentInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalid, err)
	}
	if err := a.Resolver.Save(ctx, id, info); err != nil {
		return err
	}
	a.StatusCache.Clear()
	return nil
}

// CopyTournament resolves src and stores its info under dst. The read and the
// write are not atomic with respect to concurrent edits of src. Clears the
// whole status cache like any other administrative mutation.
func (a *API) CopyTournament(ctx context.Context, src, dst string) error {
	if dst == "" {
		return fmt.Errorf("%w: destination id is empty", shared.ErrInvalid)
	}
	info, err := a.Resolver.Resolve(ctx, src)
	if err != nil {
		return err
	}
	if err := a.Resolver.Save(ctx, dst, *info); err != nil {
		return err
	}
	a.StatusCache.Clear()
	return nil
}

// ListTournamentIDs merges the registry's known ids with ids present in the
// authoritative store, deduplicated and sorted.
func (a *API) ListTournamentIDs(ctx context.Context) ([]string, error) {
	stored, err := a.Resolver.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, id := range append(registry.IDs(), stored...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SearchPlayers fuzzy-matches query against the tournament's roster, best
// matches first. Used by the web layer to suggest usernames on a miss.
func (a *API) SearchPlayers(ctx context.Context, id string, query string) ([]string, error) {
	info, err := a.Resolver.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	lookup := make(map[string]string, len(info.Players))
	lower := make([]string, 0, len(info.Players))
	for _, p := range info.Players {
		l := strings.ToLower(p.Username)
		lookup[l] = p.Username
		lower = append(lower, l)
	}

	ranks := fuzzy.RankFind(strings.ToLower(query), lower)
	sort.Sort(ranks)

	matches := make([]string, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, lookup[r.Target])
	}
	return matches, nil
}
