package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openroom/chat-api/internal/room"
)

// ParticipantStore persists participants in the participants collection.
type ParticipantStore struct {
	coll *mongo.Collection
}

// List returns all participant documents.
func (s *ParticipantStore) List(ctx context.Context) ([]room.Participant, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: find participants: %w", err)
	}
	var out []room.Participant
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("store: decode participants: %w", err)
	}
	return out, nil
}

// FindByName returns the participant with the exact given name, or nil when
// absent.
func (s *ParticipantStore) FindByName(ctx context.Context, name string) (*room.Participant, error) {
	var p room.Participant
	err := s.coll.FindOne(ctx, bson.M{"name": name}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find participant: %w", err)
	}
	return &p, nil
}

// Insert stores a new participant document.
func (s *ParticipantStore) Insert(ctx context.Context, p room.Participant) error {
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("store: insert participant: %w", err)
	}
	return nil
}

// SetLastStatus rewrites the heartbeat timestamp of the named participant.
func (s *ParticipantStore) SetLastStatus(ctx context.Context, name string, ts int64) error {
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{"lastStatus": ts}})
	if err != nil {
		return fmt.Errorf("store: update lastStatus: %w", err)
	}
	return nil
}

// DeleteByName removes every participant document with the given name.
// DeleteMany also clears duplicates left behind by concurrent registrations
// of the same name.
func (s *ParticipantStore) DeleteByName(ctx context.Context, name string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"name": name}); err != nil {
		return fmt.Errorf("store: delete participant: %w", err)
	}
	return nil
}
