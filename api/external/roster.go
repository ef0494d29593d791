/* roster.go
 * Contains the roster csv fetcher used to supplement a tournament whose bundled
 * info ships an empty player list. The document is two delimited columns,
 * username then group, optionally starting with a header line
 */

package external

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-andiamo/splitter"

	"tak-standings/api/shared"
)

// commaSplitter tolerates quoted fields so that a group label containing a
// comma stays one column.
var commaSplitter = func() splitter.Splitter {
	s, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		panic(err)
	}
	return s
}()

// FetchRoster downloads and parses a roster csv into tournament players.
func (c *Client) FetchRoster(ctx context.Context, url string) ([]shared.TournamentPlayer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d from %s", shared.ErrUpstreamUnavailable, resp.StatusCode, url)
	}

	players, err := ParseRosterCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: roster from %s: %v", shared.ErrInvalid, url, err)
	}
	return players, nil
}

// ParseRosterCSV reads two-column rows of username,group. Fields are trimmed,
// blank lines skipped, an optional "username,group" header ignored, and a
// duplicate username keeps its first occurrence so the resulting roster has
// unique usernames.
func ParseRosterCSV(r io.Reader) ([]shared.TournamentPlayer, error) {
	players := []shared.TournamentPlayer{}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts, err := commaSplitter.Split(line)
		if err != nil {
			return nil, fmt.Errorf("splitting roster line %q: %w", line, err)
		}
		if len(parts) < 2 {
			return nil, fmt.Errorf("roster line %q has fewer than two columns", line)
		}

		username := strings.Trim(strings.TrimSpace(parts[0]), `"`)
		group := strings.Trim(strings.TrimSpace(parts[1]), `"`)
		if username == "" {
			return nil, fmt.Errorf("roster line %q has an empty username", line)
		}
		if strings.EqualFold(username, "username") && strings.EqualFold(group, "group") {
			continue // header line
		}
		if seen[username] {
			continue
		}
		seen[username] = true

		players = append(players, shared.TournamentPlayer{Username: username, Group: group})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return players, nil
}
