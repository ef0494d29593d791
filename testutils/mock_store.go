/* mock_store.go
 * Contains an in-memory implementation of store.Interface for tests, with error
 * injection for exercising failure paths
 */

package testutils

import (
	"context"

	"tak-standings/api/shared"
	"tak-standings/api/store"
)

// MockStore implements store.Interface backed by a map.
type MockStore struct {
	Records map[string]shared.TournamentInfo

	// Error injection for testing error paths
	GetError  error
	PutError  error
	ListError error

	PutCalls int
}

// Ensure MockStore implements the store interface
var _ store.Interface = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{
		Records: make(map[string]shared.TournamentInfo),
	}
}

func (m *MockStore) GetTournamentInfo(_ context.Context, id string) (*shared.TournamentInfo, bool, error) {
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	info, ok := m.Records[id]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored record.
	out := info
	return &out, true, nil
}

func (m *MockStore) PutTournamentInfo(_ context.Context, id string, info shared.TournamentInfo) error {
	m.PutCalls++
	if m.PutError != nil {
		return m.PutError
	}
	m.Records[id] = info
	return nil
}

func (m *MockStore) ListTournamentIDs(_ context.Context) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	ids := make([]string, 0, len(m.Records))
	for id := range m.Records {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return nil
}
