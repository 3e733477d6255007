package domain

import (
	"strconv"

	"github.com/chirpnet/chirp-backend/internal/common"
)

// conversationSeparator joins the two participant ids. User ids are decimal
// strings, so the separator can never occur inside an id.
const conversationSeparator = "_"

// ConversationID derives the canonical conversation key for an unordered pair
// of users. It is commutative (ConversationID(a,b) == ConversationID(b,a)) and
// injective over unordered pairs: the two ids are sorted lexicographically and
// joined with a separator that cannot appear in an id.
func ConversationID(userA, userB uint) (string, error) {
	if userA == userB {
		return "", common.ErrSelfMessage
	}

	a := strconv.FormatUint(uint64(userA), 10)
	b := strconv.FormatUint(uint64(userB), 10)
	if b < a {
		a, b = b, a
	}
	return a + conversationSeparator + b, nil
}

// Conversation is the derived inbox row for one conversation. It is never
// persisted: it is recomputed from the message log on every read.
type Conversation struct {
	ConversationID string           `json:"conversationId"`
	OtherUser      UserRef          `json:"otherUser"`
	LastMessage    *MessageResponse `json:"lastMessage"`
	UnreadCount    int              `json:"unreadCount"`
}
