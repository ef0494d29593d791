/* playtak.go
 * Contains the client used to fetch game results from the playtak api. Responses
 * are cached by their exact request url in a shared TTL cache, so callers must
 * construct identical urls for equivalent requests. Cached payloads are
 * re-validated on read: a malformed cached entry is discarded for that call and
 * a live fetch happens instead
 */

package external

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"tak-standings/api/cache"
	"tak-standings/api/shared"
)

// PlaytakURL is the production api base.
const PlaytakURL = "https://api.playtak.com"

const userAgent = "TakStandingsFetcher/1.0"

// Client fetches match results from the playtak api.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	responses  *cache.Cache[string, any]
}

// NewClient builds a playtak client around the given response cache. The base
// url is injectable for tests; pass PlaytakURL in production. Outbound calls
// are rate limited and bounded by a one minute timeout.
func NewClient(baseURL string, responses *cache.Cache[string, any]) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 1 * time.Minute,
		},
		limiter:   rate.NewLimiter(rate.Limit(5), 10),
		responses: responses,
	}
}

// GameURL returns the single-game request url for a game id.
func (c *Client) GameURL(gameID int64) string {
	return fmt.Sprintf("%s/v1/games-history/%d", c.baseURL, gameID)
}

// FetchGamesPage returns the game list at url, from cache when a live valid
// entry exists. An invalid live payload is never cached.
func (c *Client) FetchGamesPage(ctx context.Context, url string) (*shared.GameListResponse, error) {
	if cached, ok := c.responses.Get(url); ok {
		if resp, ok := cached.(*shared.GameListResponse); ok && resp.Validate() == nil {
			return resp, nil
		}
		log.Println("cached response failed game list check")
	}

	var resp shared.GameListResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		log.Println("api response failed game list check:", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalid, err)
	}

	c.responses.Set(url, &resp)
	return &resp, nil
}

// FetchGameByID returns a single game result, following the same
// cache-then-fetch pattern keyed by the per-id url.
func (c *Client) FetchGameByID(ctx context.Context, gameID int64) (*shared.GameResult, error) {
	url := c.GameURL(gameID)

	if cached, ok := c.responses.Get(url); ok {
		if game, ok := cached.(*shared.GameResult); ok && game.Validate() == nil {
			return game, nil
		}
		log.Println("cached response failed game result check")
	}

	var game shared.GameResult
	if err := c.getJSON(ctx, url, &game); err != nil {
		return nil, err
	}
	if err := game.Validate(); err != nil {
		log.Println("api response failed game result check:", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalid, err)
	}

	c.responses.Set(url, &game)
	return &game, nil
}

// getJSON performs a rate-limited GET and decodes the body into out. Transport
// and status failures map to ErrUpstreamUnavailable, undecodable bodies to
// ErrInvalid.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %v", shared.ErrUpstreamUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code %d from %s", shared.ErrUpstreamUnavailable, resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response from %s: %v", shared.ErrInvalid, url, err)
	}
	return nil
}
