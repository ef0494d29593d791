/* playtak_test.go
 * Contains unit tests for playtak.go
 */

package external

import (
	"context"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tak-standings/api/cache"
	"tak-standings/api/shared"
	"tak-standings/testutils"
)

func newTestClient(f *testutils.FakePlaytakServer) (*Client, *cache.Cache[string, any]) {
	responses := cache.New[string, any](cache.DefaultTTL, clock.NewMock())
	return NewClient(f.URL(), responses), responses
}

func TestFetchGamesPage_PopulatesCache(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()
	f.Games = []shared.GameResult{
		{ID: 1, PlayerWhite: "alice", PlayerBlack: "bob", Result: "R-0"},
	}

	c, _ := newTestClient(f)

	resp, err := c.FetchGamesPage(context.Background(), f.GamesURL())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "alice", resp.Items[0].PlayerWhite)

	// Second call is served from cache.
	_, err = c.FetchGamesPage(context.Background(), f.GamesURL())
	require.NoError(t, err)
	assert.Equal(t, 1, f.ListRequests)
}

func TestFetchGamesPage_MalformedResponseNotCached(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()
	f.MalformedList = true

	c, responses := newTestClient(f)

	_, err := c.FetchGamesPage(context.Background(), f.GamesURL())
	assert.ErrorIs(t, err, shared.ErrInvalid)
	assert.Equal(t, 0, responses.Len())
}

func TestFetchGamesPage_UpstreamFailure(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()
	f.FailList = true

	c, _ := newTestClient(f)

	_, err := c.FetchGamesPage(context.Background(), f.GamesURL())
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}

func TestFetchGamesPage_CorruptCacheEntryFallsThrough(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()
	f.Games = []shared.GameResult{
		{ID: 7, PlayerWhite: "alice", PlayerBlack: "bob", Result: "0-R"},
	}

	c, responses := newTestClient(f)

	// Poison the cache with something that is not a game list.
	responses.Set(f.GamesURL(), "not a game list")

	resp, err := c.FetchGamesPage(context.Background(), f.GamesURL())
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 1, f.ListRequests, "corrupt cache entry should trigger a live fetch")

	// The live fetch overwrote the poisoned entry.
	cached, ok := responses.Get(f.GamesURL())
	require.True(t, ok)
	_, isList := cached.(*shared.GameListResponse)
	assert.True(t, isList)
}

func TestFetchGameByID(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()
	f.GamesByID[601866] = shared.GameResult{
		ID: 601866, PlayerWhite: "carol", PlayerBlack: "dave", Result: "1/2-1/2",
	}

	c, _ := newTestClient(f)

	game, err := c.FetchGameByID(context.Background(), 601866)
	require.NoError(t, err)
	assert.Equal(t, "carol", game.PlayerWhite)

	_, err = c.FetchGameByID(context.Background(), 601866)
	require.NoError(t, err)
	assert.Equal(t, 1, f.GameRequests, "second fetch should hit the cache")
}

func TestFetchGameByID_UnknownID(t *testing.T) {
	f := testutils.NewFakePlaytakServer()
	defer f.Close()

	c, _ := newTestClient(f)

	_, err := c.FetchGameByID(context.Background(), 999)
	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
}
