/* store.go
 * Contains Open, which picks a preference backend from a connection URI, and the MongoDB backend.
 * The console only stores small UI values here (auth token, admin mode, active tab, expanded matches); none of it
 * is a source of truth for tournament data
 */

package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultDatabase = "chess_console"

type MongoStore struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Preferences *mongo.Collection
	}
}

// Open returns the backend matching the scheme of uri. An empty uri (or memory://) returns an in-process store
// that is lost on restart
func Open(ctx context.Context, uri string) (Interface, error) {
	switch {
	case uri == "" || strings.HasPrefix(uri, "memory://"):
		return NewMemoryStore(), nil
	case strings.HasPrefix(uri, "mongodb://"), strings.HasPrefix(uri, "mongodb+srv://"):
		return NewMongoStore(ctx, uri, databaseFromURI(uri))
	case strings.HasPrefix(uri, "postgres://"), strings.HasPrefix(uri, "postgresql://"):
		return NewPostgresStore(ctx, uri)
	default:
		return nil, fmt.Errorf("unsupported preference store uri %q", uri)
	}
}

// databaseFromURI reads the database name from the uri path, falling back to defaultDatabase
func databaseFromURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil {
		return defaultDatabase
	}
	name := strings.Trim(parsed.Path, "/")
	if name == "" {
		return defaultDatabase
	}
	return name
}

// NewMongoStore connects to MongoDB and returns a store backed by the ui_preferences collection
// Preconditions: Receives a context, mongo connection uri and database name
// Postconditions: Returns a connected MongoStore, or an error if the connection could not be established
func NewMongoStore(ctx context.Context, mongoURI string, dbName string) (*MongoStore, error) {
	if dbName == "" {
		return nil, fmt.Errorf("database name cannot be empty")
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	db := client.Database(dbName)

	s := &MongoStore{
		Client:   client,
		Database: db,
	}
	s.Collections.Preferences = db.Collection("ui_preferences")
	return s, nil
}

// Close disconnects the mongo client
func (s *MongoStore) Close(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
