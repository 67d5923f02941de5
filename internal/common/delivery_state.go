package common

// DeliveryState tracks how far a message has progressed toward being read
// by one recipient. States form a strict total order and a record only ever
// moves forward through it.
type DeliveryState string

const (
	DeliveryStateSent      DeliveryState = "SENT"
	DeliveryStateReceived  DeliveryState = "RECEIVED"
	DeliveryStateDelivered DeliveryState = "DELIVERED"
	DeliveryStateRead      DeliveryState = "READ"
)

var deliveryStateRanks = map[DeliveryState]int{
	DeliveryStateSent:      1,
	DeliveryStateReceived:  2,
	DeliveryStateDelivered: 3,
	DeliveryStateRead:      4,
}

// String returns the string representation
func (s DeliveryState) String() string {
	return string(s)
}

// Rank returns the position of the state in the lifecycle order, or 0 for
// an unknown state.
func (s DeliveryState) Rank() int {
	return deliveryStateRanks[s]
}

// IsValid checks if the delivery state is one of the four lifecycle states
func (s DeliveryState) IsValid() bool {
	_, ok := deliveryStateRanks[s]
	return ok
}

// Before reports whether s is strictly earlier in the lifecycle than other.
func (s DeliveryState) Before(other DeliveryState) bool {
	return s.Rank() < other.Rank()
}

// ParseDeliveryState maps a wire value to a DeliveryState.
func ParseDeliveryState(value string) (DeliveryState, bool) {
	s := DeliveryState(value)
	return s, s.IsValid()
}
