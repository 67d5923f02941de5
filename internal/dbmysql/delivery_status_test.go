package dbmysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatapp/internal/common"
)

func TestMessageDeliveryStatus_Advance(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := created.Add(5 * time.Minute)

	tests := []struct {
		name          string
		current       common.DeliveryState
		target        common.DeliveryState
		wantAdvanced  bool
		wantStatus    common.DeliveryState
		wantTimestamp time.Time
	}{
		{
			name:          "sent advances to received",
			current:       common.DeliveryStateSent,
			target:        common.DeliveryStateReceived,
			wantAdvanced:  true,
			wantStatus:    common.DeliveryStateReceived,
			wantTimestamp: later,
		},
		{
			name:          "sent skips straight to read",
			current:       common.DeliveryStateSent,
			target:        common.DeliveryStateRead,
			wantAdvanced:  true,
			wantStatus:    common.DeliveryStateRead,
			wantTimestamp: later,
		},
		{
			name:          "same state is a no-op",
			current:       common.DeliveryStateDelivered,
			target:        common.DeliveryStateDelivered,
			wantAdvanced:  false,
			wantStatus:    common.DeliveryStateDelivered,
			wantTimestamp: created,
		},
		{
			name:          "late received ack after read is a no-op",
			current:       common.DeliveryStateRead,
			target:        common.DeliveryStateReceived,
			wantAdvanced:  false,
			wantStatus:    common.DeliveryStateRead,
			wantTimestamp: created,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := &MessageDeliveryStatus{
				MessageID:       1,
				RecipientID:     "user-456",
				Status:          tt.current,
				StatusTimestamp: created,
			}

			advanced := row.Advance(tt.target, later)

			assert.Equal(t, tt.wantAdvanced, advanced)
			assert.Equal(t, tt.wantStatus, row.Status)
			assert.Equal(t, tt.wantTimestamp, row.StatusTimestamp)
		})
	}
}

func TestMessageDeliveryStatus_Advance_Monotonic(t *testing.T) {
	// Any call order ends with the highest rank seen, and the timestamp of
	// the last actual advance.
	row := &MessageDeliveryStatus{
		Status:          common.DeliveryStateSent,
		StatusTimestamp: time.Now(),
	}

	t1 := time.Now().Add(time.Minute)
	t2 := t1.Add(time.Minute)

	assert.True(t, row.Advance(common.DeliveryStateRead, t1))
	assert.False(t, row.Advance(common.DeliveryStateReceived, t2))
	assert.False(t, row.Advance(common.DeliveryStateDelivered, t2))

	assert.Equal(t, common.DeliveryStateRead, row.Status)
	assert.Equal(t, t1, row.StatusTimestamp)
}
