/* resolver.go
 * Tiered resolution of tournament info. Tiers are tried in order, first success
 * wins: the authoritative override store, then the bundled static definition,
 * then roster supplementation from an external csv when the resolved roster is
 * empty. A corrupt override is fatal rather than silently masked by stale
 * bundled defaults. The chain is a slice of sources so adding a tier is
 * mechanical
 */

package tournament

import (
	"context"
	"errors"
	"fmt"
	"log"

	"tak-standings/api/external"
	"tak-standings/api/registry"
	"tak-standings/api/shared"
	"tak-standings/api/store"
)

// infoSource is one resolution tier. found=false with a nil error means "not
// here, try the next tier"; any error short-circuits the chain.
type infoSource interface {
	name() string
	lookup(ctx context.Context, id string) (info *shared.TournamentInfo, found bool, err error)
}

// Resolver owns tournament info loading. Downstream components receive the
// resolved value read-only for one request.
type Resolver struct {
	sources []infoSource
	store   store.Interface
	fetcher *external.Client

	// rosterCSVURL maps a tournament id to its roster source, empty when none
	// is configured. Defaults to the registry; injectable for tests.
	rosterCSVURL func(id string) string
}

func NewResolver(s store.Interface, fetcher *external.Client) *Resolver {
	return &Resolver{
		sources: []infoSource{
			overrideSource{store: s},
			bundledSource{},
		},
		store:   s,
		fetcher: fetcher,
		rosterCSVURL: func(id string) string {
			src, ok := registry.Lookup(id)
			if !ok {
				return ""
			}
			return src.RosterCSVURL
		},
	}
}

// Resolve produces the canonical info record for id. Unknown ids fail with
// ErrNotFound before any storage tier is read; a present-but-corrupt override
// fails with ErrInvalid without falling through. Unexpected failures inside
// the tiers are logged and normalized so callers treat resolution failure
// uniformly regardless of which tier raised it.
func (r *Resolver) Resolve(ctx context.Context, id string) (info *shared.TournamentInfo, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic resolving tournament %s: %v", id, rec)
			info = nil
			err = fmt.Errorf("%w: resolving tournament %s", shared.ErrUpstreamUnavailable, id)
		}
	}()

	if !registry.Known(id) {
		return nil, fmt.Errorf("%w: unknown tournament id %q", shared.ErrNotFound, id)
	}

	for _, src := range r.sources {
		info, found, err := src.lookup(ctx, id)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) && !errors.Is(err, shared.ErrInvalid) {
				log.Printf("resolving tournament %s via %s: %v", id, src.name(), err)
				err = fmt.Errorf("%w: resolving tournament %s via %s", shared.ErrUpstreamUnavailable, id, src.name())
			}
			return nil, err
		}
		if !found {
			continue
		}
		return r.supplementRoster(ctx, id, info)
	}

	// Unreachable while the bundled tier covers every registered id, but the
	// chain does not rely on that.
	return nil, fmt.Errorf("%w: no source produced tournament %q", shared.ErrNotFound, id)
}

// supplementRoster attaches an externally hosted roster when the resolved one
// is empty and a roster source is configured. The supplemented roster lives on
// the in-memory info only; it is never persisted back to the store.
func (r *Resolver) supplementRoster(ctx context.Context, id string, info *shared.TournamentInfo) (*shared.TournamentInfo, error) {
	if len(info.Players) > 0 {
		return info, nil
	}
	url := r.rosterCSVURL(id)
	if url == "" {
		return info, nil
	}

	players, err := r.fetcher.FetchRoster(ctx, url)
	if err != nil {
		log.Printf("supplementing roster for %s: %v", id, err)
		return nil, fmt.Errorf("supplementing roster for %s: %w", id, err)
	}
	info.Players = players
	return info, nil
}

// Save validates raw against the TournamentInfo shape and writes it to the
// authoritative store. Invalid input is rejected without any partial write.
func (r *Resolver) Save(ctx context.Context, id string, info shared.TournamentInfo) error {
	if id == "" {
		return fmt.Errorf("%w: empty tournament id", shared.ErrInvalid)
	}
	if err := info.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalid, err)
	}
	if err := r.store.PutTournamentInfo(ctx, id, info); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	return nil
}

// ListIDs enumerates ids present in the authoritative store.
func (r *Resolver) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.ListTournamentIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	return ids, nil
}

// overrideSource is the authoritative store tier. A record that fails shape
// validation is ErrInvalid: no fall-through to bundled defaults.
type overrideSource struct {
	store store.Interface
}

func (overrideSource) name() string { return "override store" }

func (o overrideSource) lookup(ctx context.Context, id string) (*shared.TournamentInfo, bool, error) {
	info, found, err := o.store.GetTournamentInfo(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	if err := info.Validate(); err != nil {
		return nil, false, fmt.Errorf("%w: override for %s: %v", shared.ErrInvalid, id, err)
	}
	return info, true, nil
}

// bundledSource parses the embedded static definition.
type bundledSource struct{}

func (bundledSource) name() string { return "bundled definition" }

func (bundledSource) lookup(_ context.Context, id string) (*shared.TournamentInfo, bool, error) {
	info, err := registry.LoadInfo(id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return info, true, nil
}
