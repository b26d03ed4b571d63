// Package store implements the persistence gateway over MongoDB. Documents
// live in two collections, participants and messages. Message ids are
// ObjectIDs assigned on insert and exposed to the rest of the system as hex
// strings.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 5 * time.Second

// Client wraps the process-wide mongo connection. It is created once at
// startup and shared by every request handler and the sweeper; no additional
// coordination sits on top of what the driver serializes per operation.
type Client struct {
	mc *mongo.Client
	db *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, database string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Client{mc: mc, db: mc.Database(database)}, nil
}

// Close disconnects from MongoDB.
func (c *Client) Close(ctx context.Context) error {
	return c.mc.Disconnect(ctx)
}

// Participants returns the participant store bound to this connection.
func (c *Client) Participants() *ParticipantStore {
	return &ParticipantStore{coll: c.db.Collection("participants")}
}

// Messages returns the message store bound to this connection.
func (c *Client) Messages() *MessageStore {
	return &MessageStore{coll: c.db.Collection("messages")}
}
