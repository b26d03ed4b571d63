package room_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openroom/chat-api/internal/room"
	"github.com/openroom/chat-api/internal/store"
)

const staleAfter = 10 * time.Second

func newTestSweeper() (*room.Sweeper, *store.MemoryParticipants, *store.MemoryMessages) {
	participants := store.NewMemoryParticipants()
	messages := store.NewMemoryMessages()
	sweeper := room.NewSweeper(participants, messages, time.Second, staleAfter)
	sweeper.Now = func() time.Time { return baseTime }
	return sweeper, participants, messages
}

func TestSweep_EvictsStaleAndKeepsFresh(t *testing.T) {
	req := require.New(t)
	sweeper, participants, messages := newTestSweeper()
	ctx := context.Background()

	// Ann last reported exactly staleAfter ago (boundary is inclusive);
	// Bob reported just now.
	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: baseTime.Add(-staleAfter).UnixMilli()})
	_ = participants.Insert(ctx, room.Participant{Name: "Bob", LastStatus: baseTime.UnixMilli()})

	sweeper.Sweep(ctx)

	remaining, err := participants.List(ctx)
	req.NoError(err)
	req.Len(remaining, 1)
	req.Equal("Bob", remaining[0].Name)

	// Exactly one departure notice, addressed to the whole room.
	stored, err := messages.List(ctx)
	req.NoError(err)
	req.Len(stored, 1)
	req.Equal("Ann", stored[0].From)
	req.Equal(room.BroadcastTo, stored[0].To)
	req.Equal(room.TypeStatus, stored[0].Type)
	req.Equal("sai da sala...", stored[0].Text)
}

func TestSweep_KeepsParticipantsWithinThreshold(t *testing.T) {
	req := require.New(t)
	sweeper, participants, messages := newTestSweeper()
	ctx := context.Background()

	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: baseTime.Add(-staleAfter + time.Millisecond).UnixMilli()})

	sweeper.Sweep(ctx)

	remaining, err := participants.List(ctx)
	req.NoError(err)
	req.Len(remaining, 1)

	stored, err := messages.List(ctx)
	req.NoError(err)
	req.Empty(stored)
}

func TestSweep_RepeatedTicksEvictOnce(t *testing.T) {
	req := require.New(t)
	sweeper, participants, messages := newTestSweeper()
	ctx := context.Background()

	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: baseTime.Add(-time.Minute).UnixMilli()})

	sweeper.Sweep(ctx)
	sweeper.Sweep(ctx)
	sweeper.Sweep(ctx)

	stored, err := messages.List(ctx)
	req.NoError(err)
	req.Len(stored, 1)
}

func TestSweep_NoticeFailureKeepsParticipant(t *testing.T) {
	req := require.New(t)
	sweeper, participants, messages := newTestSweeper()
	ctx := context.Background()

	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: baseTime.Add(-time.Minute).UnixMilli()})

	// The departure notice cannot be written, so the participant must not
	// silently disappear.
	messages.Err = errors.New("connection refused")
	sweeper.Sweep(ctx)

	remaining, err := participants.List(ctx)
	req.NoError(err)
	req.Len(remaining, 1)

	// Once the store recovers, the next tick finishes the eviction.
	messages.Err = nil
	sweeper.Sweep(ctx)

	remaining, err = participants.List(ctx)
	req.NoError(err)
	req.Empty(remaining)
}

// failingMessages rejects inserts from one sender and delegates the rest.
type failingMessages struct {
	*store.MemoryMessages
	failFrom string
}

func (f *failingMessages) Insert(ctx context.Context, m room.Message) (string, error) {
	if m.From == f.failFrom {
		return "", errors.New("write rejected")
	}
	return f.MemoryMessages.Insert(ctx, m)
}

func TestSweep_EvictionsAreIndependent(t *testing.T) {
	req := require.New(t)
	participants := store.NewMemoryParticipants()
	messages := &failingMessages{MemoryMessages: store.NewMemoryMessages(), failFrom: "Ann"}
	sweeper := room.NewSweeper(participants, messages, time.Second, staleAfter)
	sweeper.Now = func() time.Time { return baseTime }
	ctx := context.Background()

	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: baseTime.Add(-time.Minute).UnixMilli()})
	_ = participants.Insert(ctx, room.Participant{Name: "Bob", LastStatus: baseTime.Add(-time.Minute).UnixMilli()})

	sweeper.Sweep(ctx)

	// Ann's eviction failed but Bob's went through.
	remaining, err := participants.List(ctx)
	req.NoError(err)
	req.Len(remaining, 1)
	req.Equal("Ann", remaining[0].Name)

	stored, err := messages.List(ctx)
	req.NoError(err)
	req.Len(stored, 1)
	req.Equal("Bob", stored[0].From)
}

func TestRun_SweepsUntilCancelled(t *testing.T) {
	req := require.New(t)
	participants := store.NewMemoryParticipants()
	messages := store.NewMemoryMessages()
	sweeper := room.NewSweeper(participants, messages, 5*time.Millisecond, staleAfter)
	ctx, cancel := context.WithCancel(context.Background())

	_ = participants.Insert(ctx, room.Participant{Name: "Ann", LastStatus: time.Now().Add(-time.Minute).UnixMilli()})

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	req.Eventually(func() bool {
		remaining, err := participants.List(context.Background())
		return err == nil && len(remaining) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
