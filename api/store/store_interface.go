/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 */

package store

import (
	"context"

	"tak-standings/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	GetTournamentInfo(ctx context.Context, id string) (*shared.TournamentInfo, bool, error)
	PutTournamentInfo(ctx context.Context, id string, info shared.TournamentInfo) error
	ListTournamentIDs(ctx context.Context) ([]string, error)

	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
