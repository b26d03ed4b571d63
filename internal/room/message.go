package room

import "context"

// Message types. TypeStatus is authored only by the sweeper; user payloads
// carrying it are rejected.
const (
	TypePublic  = "message"
	TypePrivate = "private_message"
	TypeStatus  = "status"
)

const (
	// BroadcastTo is the recipient value addressing the whole room.
	BroadcastTo = "Todos"

	// departureText is the body of the status notice appended when a
	// participant is evicted for inactivity.
	departureText = "sai da sala..."

	// timeLayout is the wall-clock format stamped on messages.
	timeLayout = "03:04:05"
)

// Message is a single chat message. ID is assigned by the store on insert;
// a message is never mutated afterwards. From is a soft reference to a
// participant name — the participant may be evicted later without the
// message going away.
type Message struct {
	ID   string `bson:"_id,omitempty" json:"_id,omitempty"`
	From string `bson:"from" json:"from" validate:"required"`
	To   string `bson:"to" json:"to" validate:"required"`
	Text string `bson:"text" json:"text" validate:"required"`
	Type string `bson:"type" json:"type" validate:"required"`
	Time string `bson:"time" json:"time" validate:"required"`
}

// MessageStore is the persistence surface the ledger and sweeper depend on.
// List returns messages in insertion order. FindByID returns nil without
// error when the id is unknown or malformed.
type MessageStore interface {
	List(ctx context.Context) ([]Message, error)
	FindByID(ctx context.Context, id string) (*Message, error)
	Insert(ctx context.Context, m Message) (string, error)
	Delete(ctx context.Context, id string) error
}
