package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryState_Rank(t *testing.T) {
	tests := []struct {
		name     string
		state    DeliveryState
		expected int
	}{
		{"sent is rank 1", DeliveryStateSent, 1},
		{"received is rank 2", DeliveryStateReceived, 2},
		{"delivered is rank 3", DeliveryStateDelivered, 3},
		{"read is rank 4", DeliveryStateRead, 4},
		{"unknown state is rank 0", DeliveryState("ARCHIVED"), 0},
		{"empty state is rank 0", DeliveryState(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.Rank())
		})
	}
}

func TestDeliveryState_Ordering(t *testing.T) {
	order := []DeliveryState{
		DeliveryStateSent,
		DeliveryStateReceived,
		DeliveryStateDelivered,
		DeliveryStateRead,
	}

	for i := 0; i < len(order)-1; i++ {
		assert.True(t, order[i].Before(order[i+1]),
			"%s should come before %s", order[i], order[i+1])
		assert.False(t, order[i+1].Before(order[i]),
			"%s should not come before %s", order[i+1], order[i])
	}

	// A state never precedes itself.
	for _, s := range order {
		assert.False(t, s.Before(s))
	}
}

func TestParseDeliveryState(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   DeliveryState
		wantOK bool
	}{
		{"parses SENT", "SENT", DeliveryStateSent, true},
		{"parses READ", "READ", DeliveryStateRead, true},
		{"rejects lowercase", "read", DeliveryState("read"), false},
		{"rejects unknown", "UNREAD", DeliveryState("UNREAD"), false},
		{"rejects empty", "", DeliveryState(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDeliveryState(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeliveryState_IsValid(t *testing.T) {
	assert.True(t, DeliveryStateSent.IsValid())
	assert.True(t, DeliveryStateRead.IsValid())
	assert.False(t, DeliveryState("PENDING").IsValid())
}
