/* store.go
 * Contains the Store struct and NewStore function. The store is the
 * authoritative tier of tournament resolution: admin-saved overrides live here
 * and take precedence over the bundled defaults. Documents are keyed by
 * tournament id under the tournament-info namespace
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Namespace is the fixed key prefix for tournament info records, kept as the
// collection name.
const Namespace = "tournament-info"

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		TournamentInfo *mongo.Collection
	}
}

// NewStore connects to MongoDB and binds the tournament-info collection.
// Receives the database name and a mongo connection URI and returns a pointer
// to the Store object, or an error if it occurs.
func NewStore(dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.TournamentInfo = db.Collection(Namespace)
	return s, nil
}
