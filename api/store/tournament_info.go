/* tournament_info.go
 * Contains the methods for interacting with the tournament-info collection:
 * point get, point put and key enumeration under the namespace
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tak-standings/api/shared"
)

// infoRecord is the stored document shape. The raw info document is kept under
// a sub field so the id key never collides with info fields.
type infoRecord struct {
	ID   string                `bson:"_id"`
	Info shared.TournamentInfo `bson:"info"`
}

// GetTournamentInfo fetches the override record for id. The boolean reports
// presence: a missing record is not an error, it just means the resolver falls
// through to the bundled tier.
func (s *Store) GetTournamentInfo(ctx context.Context, id string) (*shared.TournamentInfo, bool, error) {
	var rec infoRecord
	err := s.Collections.TournamentInfo.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to fetch tournament info from database: %w", err)
	}
	return &rec.Info, true, nil
}

// PutTournamentInfo upserts the override record for id. Callers validate the
// info shape before calling; the store does not partially write.
func (s *Store) PutTournamentInfo(ctx context.Context, id string, info shared.TournamentInfo) error {
	if id == "" {
		return fmt.Errorf("tournament id cannot be empty")
	}

	filter := bson.M{"_id": id}
	update := bson.D{{Key: "$set", Value: infoRecord{ID: id, Info: info}}}
	opts := options.Update().SetUpsert(true)

	log.Printf("updating tournament info for %s in db", id)
	_, err := s.Collections.TournamentInfo.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("tournament info upsert failed: %w", err)
	}
	return nil
}

// ListTournamentIDs enumerates every id with an override record, for the admin
// listing surface.
func (s *Store) ListTournamentIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.Collections.TournamentInfo.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate tournament info records: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var rec struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode tournament info key: %w", err)
		}
		ids = append(ids, rec.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while enumerating tournament info records: %w", err)
	}
	return ids, nil
}
