package room

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/openroom/chat-api/internal/metrics"
)

// Ledger manages the message log: listing with per-viewer filtering,
// posting and owner-initiated deletion.
type Ledger struct {
	messages     MessageStore
	participants ParticipantStore
	log          *logrus.Entry

	// Now supplies the current time; tests substitute a fixed clock.
	Now func() time.Time
}

// NewLedger creates a ledger over the given stores. The participant store
// is consulted on post to confirm the author is still in the room.
func NewLedger(messages MessageStore, participants ParticipantStore) *Ledger {
	return &Ledger{
		messages:     messages,
		participants: participants,
		log:          logrus.WithField("component", "ledger"),
		Now:          time.Now,
	}
}

// List returns the messages visible to viewer in insertion order. A private
// message is visible only when the viewer is its sender or its named
// recipient; every other type is always visible. When limit is positive only
// the last limit entries of the filtered sequence are returned, still in
// original order.
func (l *Ledger) List(ctx context.Context, viewer string, limit int) ([]Message, error) {
	all, err := l.messages.List(ctx)
	if err != nil {
		return nil, storage("list messages", err)
	}

	visible := make([]Message, 0, len(all))
	for _, m := range all {
		if m.Type == TypePrivate && m.From != viewer && m.To != viewer {
			continue
		}
		visible = append(visible, m)
	}

	if limit > 0 && limit < len(visible) {
		visible = visible[len(visible)-limit:]
	}
	return visible, nil
}

// Post validates and stores a user-authored message. The sender and the
// timestamp are stamped server-side; caller-supplied values for them are
// discarded. Shape failures, a disallowed type and an unknown author all
// collapse into the one validation outcome.
func (l *Ledger) Post(ctx context.Context, author string, draft Message) error {
	m := Message{
		From: author,
		To:   draft.To,
		Text: draft.Text,
		Type: draft.Type,
		Time: l.Now().Format(timeLayout),
	}

	if err := ValidateMessage(m); err != nil {
		return err
	}
	if m.Type != TypePublic && m.Type != TypePrivate {
		return invalidf("message: type %q is not allowed", m.Type)
	}

	sender, err := l.participants.FindByName(ctx, author)
	if err != nil {
		return storage("post message", err)
	}
	if sender == nil {
		return invalidf("message: sender %q is not in the room", author)
	}

	if _, err := l.messages.Insert(ctx, m); err != nil {
		return storage("post message", err)
	}

	metrics.MessagesTotal.WithLabelValues(m.Type).Inc()
	l.log.WithFields(logrus.Fields{"from": m.From, "type": m.Type}).Debug("message stored")
	return nil
}

// Delete removes a message by id on behalf of its author.
func (l *Ledger) Delete(ctx context.Context, requester, id string) error {
	m, err := l.messages.FindByID(ctx, id)
	if err != nil {
		return storage("delete message", err)
	}
	if m == nil {
		return ErrNotFound
	}
	if m.From != requester {
		return ErrForbidden
	}
	if err := l.messages.Delete(ctx, id); err != nil {
		return storage("delete message", err)
	}
	return nil
}
