package room

import (
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// MaxTextBytes bounds the size of a message body.
const MaxTextBytes = 4096

var validate = validator.New()

// ValidateParticipant checks required-field presence and basic type
// correctness on a candidate participant record. Pure; no store access.
func ValidateParticipant(p Participant) error {
	if err := validate.Struct(p); err != nil {
		return invalidf("participant: %v", err)
	}
	return nil
}

// ValidateMessage checks required-field presence and body constraints on a
// candidate message record. It does not restrict the type to the
// user-postable set; the ledger enforces that, since the sweeper is allowed
// to author status messages.
func ValidateMessage(m Message) error {
	if err := validate.Struct(m); err != nil {
		return invalidf("message: %v", err)
	}
	if len(m.Text) > MaxTextBytes {
		return invalidf("message: text exceeds %d byte limit", MaxTextBytes)
	}
	if !utf8.ValidString(m.Text) {
		return invalidf("message: text is not valid UTF-8")
	}
	return nil
}
