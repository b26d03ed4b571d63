package room

import "context"

// Participant is a registered chat user. LastStatus holds the time of the
// last heartbeat (or of registration) in milliseconds since epoch; the
// sweeper compares it against the staleness threshold.
type Participant struct {
	Name       string `bson:"name" json:"name" validate:"required"`
	LastStatus int64  `bson:"lastStatus" json:"lastStatus" validate:"required"`
}

// ParticipantStore is the persistence surface the registry and sweeper
// depend on. FindByName returns nil without error when no participant with
// that exact name exists.
type ParticipantStore interface {
	List(ctx context.Context) ([]Participant, error)
	FindByName(ctx context.Context, name string) (*Participant, error)
	Insert(ctx context.Context, p Participant) error
	SetLastStatus(ctx context.Context, name string, ts int64) error
	DeleteByName(ctx context.Context, name string) error
}
