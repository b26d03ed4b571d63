package room_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openroom/chat-api/internal/room"
)

func TestValidateParticipant(t *testing.T) {
	req := require.New(t)

	req.NoError(room.ValidateParticipant(room.Participant{Name: "Ann", LastStatus: 1715938200000}))

	err := room.ValidateParticipant(room.Participant{Name: "", LastStatus: 1715938200000})
	req.True(room.IsValidation(err))

	err = room.ValidateParticipant(room.Participant{Name: "Ann", LastStatus: 0})
	req.True(room.IsValidation(err))
}

func TestValidateMessage_RequiredFields(t *testing.T) {
	req := require.New(t)

	valid := room.Message{From: "Ann", To: "Todos", Text: "hi", Type: room.TypePublic, Time: "09:30:00"}
	req.NoError(room.ValidateMessage(valid))

	for name, mutate := range map[string]func(m *room.Message){
		"from": func(m *room.Message) { m.From = "" },
		"to":   func(m *room.Message) { m.To = "" },
		"text": func(m *room.Message) { m.Text = "" },
		"type": func(m *room.Message) { m.Type = "" },
		"time": func(m *room.Message) { m.Time = "" },
	} {
		m := valid
		mutate(&m)
		err := room.ValidateMessage(m)
		if !room.IsValidation(err) {
			t.Errorf("missing %s: expected validation error, got %v", name, err)
		}
	}
}

func TestValidateMessage_BodyConstraints(t *testing.T) {
	req := require.New(t)

	oversized := room.Message{
		From: "Ann", To: "Todos", Type: room.TypePublic, Time: "09:30:00",
		Text: strings.Repeat("a", room.MaxTextBytes+1),
	}
	req.True(room.IsValidation(room.ValidateMessage(oversized)))

	garbled := room.Message{
		From: "Ann", To: "Todos", Type: room.TypePublic, Time: "09:30:00",
		Text: "hi\xff\xfe",
	}
	req.True(room.IsValidation(room.ValidateMessage(garbled)))
}
