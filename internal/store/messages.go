package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openroom/chat-api/internal/room"
)

// messageDoc is the collection representation of a message. The _id is a
// mongo ObjectID; the rest of the system sees it as a hex string.
type messageDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	From string             `bson:"from"`
	To   string             `bson:"to"`
	Text string             `bson:"text"`
	Type string             `bson:"type"`
	Time string             `bson:"time"`
}

func (d messageDoc) toMessage() room.Message {
	return room.Message{
		ID:   d.ID.Hex(),
		From: d.From,
		To:   d.To,
		Text: d.Text,
		Type: d.Type,
		Time: d.Time,
	}
}

// MessageStore persists messages in the messages collection.
type MessageStore struct {
	coll *mongo.Collection
}

// List returns all messages in insertion order.
func (s *MessageStore) List(ctx context.Context) ([]room.Message, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("store: find messages: %w", err)
	}
	var docs []messageDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("store: decode messages: %w", err)
	}
	out := make([]room.Message, len(docs))
	for i, d := range docs {
		out[i] = d.toMessage()
	}
	return out, nil
}

// FindByID returns the message with the given hex id, or nil when the id is
// malformed or references nothing.
func (s *MessageStore) FindByID(ctx context.Context, id string) (*room.Message, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var d messageDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find message: %w", err)
	}
	m := d.toMessage()
	return &m, nil
}

// Insert stores a message and returns the assigned id.
func (s *MessageStore) Insert(ctx context.Context, m room.Message) (string, error) {
	doc := messageDoc{From: m.From, To: m.To, Text: m.Text, Type: m.Type, Time: m.Time}
	res, err := s.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("store: insert message: %w", err)
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// Delete removes the message with the given hex id.
func (s *MessageStore) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("store: delete message: %w", err)
	}
	return nil
}
