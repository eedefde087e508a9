// Package conversation derives the canonical pairing key for a two-party
// conversation. The key doubles as the message-store partition key and the
// realtime room name.
package conversation

import (
	"errors"
	"strings"
)

// Separator joins the two participant ids. User ids are uuids, which never
// contain an underscore.
const Separator = "_"

var (
	ErrEmptyParticipant = errors.New("conversation: empty participant id")
	ErrMalformedID      = errors.New("conversation: malformed conversation id")
)

// ID returns the order-independent conversation id for two participants:
// the lexicographically smaller id, the separator, then the larger id.
// ID(a, b) == ID(b, a) for all non-empty a, b.
func ID(a, b string) (string, error) {
	if a == "" || b == "" {
		return "", ErrEmptyParticipant
	}
	if a > b {
		a, b = b, a
	}
	return a + Separator + b, nil
}

// Participants splits a conversation id back into its two participant ids.
func Participants(id string) (string, string, error) {
	parts := strings.SplitN(id, Separator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrMalformedID
	}
	return parts[0], parts[1], nil
}

// IsParticipant reports whether userID is one of the two participants encoded
// in the conversation id.
func IsParticipant(id, userID string) bool {
	a, b, err := Participants(id)
	if err != nil {
		return false
	}
	return a == userID || b == userID
}
