package room

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openroom/chat-api/internal/metrics"
)

// Registry manages participant presence: registration, heartbeats and
// listing. Name uniqueness is checked list-then-insert with no store-level
// index, so two concurrent registrations of the same name can both land;
// the sweeper's DeleteByName clears such duplicates on eviction.
type Registry struct {
	participants ParticipantStore
	log          *logrus.Entry

	// Now supplies the current time; tests substitute a fixed clock.
	Now func() time.Time
}

// NewRegistry creates a registry over the given participant store.
func NewRegistry(participants ParticipantStore) *Registry {
	return &Registry{
		participants: participants,
		log:          logrus.WithField("component", "registry"),
		Now:          time.Now,
	}
}

// List returns all currently registered participants, order unspecified.
func (r *Registry) List(ctx context.Context) ([]Participant, error) {
	all, err := r.participants.List(ctx)
	if err != nil {
		return nil, storage("list participants", err)
	}
	return all, nil
}

// Register creates a participant with lastStatus set to the current time.
// Names are unique under case-insensitive comparison against the active set.
func (r *Registry) Register(ctx context.Context, name string) error {
	if name == "" {
		return invalidf("participant: name is required")
	}

	all, err := r.participants.List(ctx)
	if err != nil {
		return storage("register", err)
	}
	for _, p := range all {
		if strings.EqualFold(p.Name, name) {
			return ErrConflict
		}
	}

	p := Participant{Name: name, LastStatus: r.Now().UnixMilli()}
	if err := ValidateParticipant(p); err != nil {
		return err
	}
	if err := r.participants.Insert(ctx, p); err != nil {
		return storage("register", err)
	}

	metrics.RegistrationsTotal.Inc()
	r.log.WithField("name", name).Info("participant registered")
	return nil
}

// Heartbeat refreshes the participant's lastStatus. The lookup is by exact
// name; a heartbeat never creates a participant, and repeating it only ever
// rewrites the timestamp.
func (r *Registry) Heartbeat(ctx context.Context, name string) error {
	p, err := r.participants.FindByName(ctx, name)
	if err != nil {
		return storage("heartbeat", err)
	}
	if p == nil {
		return ErrNotFound
	}
	if err := r.participants.SetLastStatus(ctx, name, r.Now().UnixMilli()); err != nil {
		return storage("heartbeat", err)
	}
	return nil
}
