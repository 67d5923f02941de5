package common

import "errors"

// Error kinds surfaced by the delivery core. Handlers map these to HTTP
// status codes with errors.Is.
var (
	// ErrRecordNotFound: no tracking row exists for the (message, recipient)
	// pair - the recipient was never part of this message's fan-out.
	ErrRecordNotFound = errors.New("delivery record not found")

	// ErrInvalidTransition: an explicit request to move a record to a state
	// earlier in the lifecycle than its current one.
	ErrInvalidTransition = errors.New("invalid delivery state transition")

	// ErrDuplicateRecipient: the sender appeared in the recipient set at
	// initialize time. Indicates a caller bug.
	ErrDuplicateRecipient = errors.New("sender listed as recipient")

	// ErrEmptyParticipantSet: fan-out attempted on a conversation with no
	// addressable recipients.
	ErrEmptyParticipantSet = errors.New("conversation has no addressable recipients")

	ErrConversationNotFound = errors.New("conversation not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotParticipant       = errors.New("user is not a participant in this conversation")
	ErrMediaNotFound        = errors.New("media file not found or already attached")
)
