/* preferences.go
 * Contains the methods for interacting with the ui_preferences collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PreferenceDoc is the way a single preference is stored in the DB
type PreferenceDoc struct {
	Namespace    string    `bson:"namespace"`
	TournamentID int       `bson:"tournament_id"`
	Key          string    `bson:"key"`
	Value        string    `bson:"value"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func keyFilter(key Key) bson.M {
	return bson.M{
		"namespace":     key.Namespace,
		"tournament_id": key.TournamentID,
		"key":           key.Name,
	}
}

// Get returns the value stored for key
// Preconditions: Receives a context and the key to look up
// Postconditions: Returns the stored value, ErrNotFound if there is none, or an error if the lookup fails
func (s *MongoStore) Get(ctx context.Context, key Key) (string, error) {
	var doc PreferenceDoc
	err := s.Collections.Preferences.FindOne(ctx, keyFilter(key)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("error fetching preference from db: %w", err)
	}
	return doc.Value, nil
}

// Set stores value for key, inserting a new document if the key has never been stored
// Preconditions: Receives a context, key and value
// Postconditions: Stores or updates the preference, or returns an error if the operation was unsuccessful
func (s *MongoStore) Set(ctx context.Context, key Key, value string) error {
	// Attempt to find an existing document
	var existing PreferenceDoc
	err := s.Collections.Preferences.FindOne(ctx, keyFilter(key)).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing preference failed: %w", err)
	}

	doc := PreferenceDoc{
		Namespace:    key.Namespace,
		TournamentID: key.TournamentID,
		Key:          key.Name,
		Value:        value,
		UpdatedAt:    time.Now().UTC(),
	}

	if notFound {
		if _, err := s.Collections.Preferences.InsertOne(ctx, doc); err != nil {
			return fmt.Errorf("failed to insert preference: %w", err)
		}
		return nil
	}

	update := bson.M{"$set": bson.M{"value": doc.Value, "updated_at": doc.UpdatedAt}}
	if _, err := s.Collections.Preferences.UpdateOne(ctx, keyFilter(key), update); err != nil {
		return fmt.Errorf("failed to update preference: %w", err)
	}
	return nil
}

// Delete removes the value stored for key. Deleting a missing key is not an error
func (s *MongoStore) Delete(ctx context.Context, key Key) error {
	if _, err := s.Collections.Preferences.DeleteOne(ctx, keyFilter(key)); err != nil {
		return fmt.Errorf("failed to delete preference: %w", err)
	}
	return nil
}
