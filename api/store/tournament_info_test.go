/* tournament_info_test.go
 * Contains unit tests for tournament_info.go
 */

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"tak-standings/api/shared"
)

func storeForTest(mt *mtest.T) *Store {
	s := &Store{
		Client:   mt.Client,
		Database: mt.DB,
	}
	s.Collections.TournamentInfo = mt.Coll
	return s
}

func sampleInfoDoc(id string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "info", Value: bson.D{
			{Key: "name", Value: "Override Tournament"},
			{Key: "infoUrl", Value: "https://example.org/override"},
			{Key: "dateRange", Value: bson.D{
				{Key: "start", Value: time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC)},
				{Key: "end", Value: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
			}},
			{Key: "players", Value: bson.A{
				bson.D{{Key: "username", Value: "alice"}, {Key: "group", Value: "A"}},
			}},
		}},
	}
}

// region GetTournamentInfo tests

func TestGetTournamentInfo_Found(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns stored override", func(mt *mtest.T) {
		s := storeForTest(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(1, "test.tournament-info", mtest.FirstBatch,
			sampleInfoDoc("INTERMEDIATE_TOURNAMENT_NOV_2024")))

		info, found, err := s.GetTournamentInfo(context.Background(), "INTERMEDIATE_TOURNAMENT_NOV_2024")
		require.NoError(mt, err)
		require.True(mt, found)
		assert.Equal(mt, "Override Tournament", info.Name)
		require.Len(mt, info.Players, 1)
		assert.Equal(mt, "alice", info.Players[0].Username)
	})
}

func TestGetTournamentInfo_Missing(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("absence is not an error", func(mt *mtest.T) {
		s := storeForTest(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.tournament-info", mtest.FirstBatch))

		info, found, err := s.GetTournamentInfo(context.Background(), "NO_OVERRIDE")
		require.NoError(mt, err)
		assert.False(mt, found)
		assert.Nil(mt, info)
	})
}

func TestGetTournamentInfo_StorageError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("surfaces command failure", func(mt *mtest.T) {
		s := storeForTest(mt)

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
		}))

		_, _, err := s.GetTournamentInfo(context.Background(), "ANY")
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "failed to fetch tournament info")
	})
}

// endregion

// region PutTournamentInfo tests

func TestPutTournamentInfo_Upserts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("writes the record", func(mt *mtest.T) {
		s := storeForTest(mt)

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		info := shared.TournamentInfo{
			Name:    "Override Tournament",
			InfoURL: "https://example.org/override",
			DateRange: shared.DateRange{
				Start: time.Date(2024, 11, 16, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
			},
			Players: []shared.TournamentPlayer{},
		}
		err := s.PutTournamentInfo(context.Background(), "INTERMEDIATE_TOURNAMENT_NOV_2024", info)
		require.NoError(mt, err)
	})
}

func TestPutTournamentInfo_EmptyID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("rejects empty id before any write", func(mt *mtest.T) {
		s := storeForTest(mt)

		err := s.PutTournamentInfo(context.Background(), "", shared.TournamentInfo{})
		require.Error(mt, err)
		assert.Contains(mt, err.Error(), "cannot be empty")
	})
}

// endregion

// region ListTournamentIDs tests

func TestListTournamentIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("enumerates record keys", func(mt *mtest.T) {
		s := storeForTest(mt)

		first := mtest.CreateCursorResponse(1, "test.tournament-info", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "INTERMEDIATE_TOURNAMENT_NOV_2024"}})
		second := mtest.CreateCursorResponse(1, "test.tournament-info", mtest.NextBatch,
			bson.D{{Key: "_id", Value: "COPY_OF_INTERMEDIATE"}})
		done := mtest.CreateCursorResponse(0, "test.tournament-info", mtest.NextBatch)
		mt.AddMockResponses(first, second, done)

		ids, err := s.ListTournamentIDs(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"INTERMEDIATE_TOURNAMENT_NOV_2024", "COPY_OF_INTERMEDIATE"}, ids)
	})
}

// endregion
