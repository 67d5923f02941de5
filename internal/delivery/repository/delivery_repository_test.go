package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatapp/internal/common"
	"chatapp/internal/dbmysql"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestDeliveryRepository_CreateBatch(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)
	now := time.Now().UTC()

	rows := []*dbmysql.MessageDeliveryStatus{
		{MessageID: 42, RecipientID: "user-b", Status: common.DeliveryStateSent, StatusTimestamp: now},
		{MessageID: 42, RecipientID: "user-c", Status: common.DeliveryStateSent, StatusTimestamp: now},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `message_delivery_status`")).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	err := repo.CreateBatch(context.Background(), rows)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_CreateBatch_Empty(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)

	// No SQL expected for an empty batch.
	err := repo.CreateBatch(context.Background(), nil)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_Find(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "row exists",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM `message_delivery_status` WHERE message_id = ? AND recipient_id = ?")).
					WithArgs(42, "user-b", 1).
					WillReturnRows(sqlmock.NewRows(
						[]string{"id", "message_id", "recipient_id", "status", "status_timestamp"}).
						AddRow(1, 42, "user-b", "DELIVERED", time.Now().UTC()))
			},
		},
		{
			name: "row missing",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					"SELECT * FROM `message_delivery_status`")).
					WithArgs(42, "user-b", 1).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
			},
			wantErr: common.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock, cleanup := setupTestDB(t)
			defer cleanup()

			repo := NewDeliveryRepository(gormDB)
			tt.mockSetup(mock)

			row, err := repo.Find(context.Background(), 42, "user-b")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, common.DeliveryStateDelivered, row.Status)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeliveryRepository_Advance(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantMoved    bool
	}{
		{
			name:         "row moves forward",
			rowsAffected: 1,
			wantMoved:    true,
		},
		{
			name:         "row already at or past target",
			rowsAffected: 0,
			wantMoved:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock, cleanup := setupTestDB(t)
			defer cleanup()

			repo := NewDeliveryRepository(gormDB)

			// Target DELIVERED guards on the two states below it.
			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(
				"UPDATE `message_delivery_status` SET")).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			moved, err := repo.Advance(context.Background(), 42, "user-b",
				common.DeliveryStateDelivered, time.Now().UTC())
			require.NoError(t, err)
			assert.Equal(t, tt.wantMoved, moved)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeliveryRepository_ListByMessage(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `message_delivery_status` WHERE message_id = ? ORDER BY recipient_id ASC")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "message_id", "recipient_id", "status", "status_timestamp"}).
			AddRow(1, 42, "user-b", "READ", now).
			AddRow(2, 42, "user-c", "SENT", now))

	rows, err := repo.ListByMessage(context.Background(), 42)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "user-b", rows[0].RecipientID)
	assert.Equal(t, common.DeliveryStateRead, rows[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_UnreadForRecipient(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `message_delivery_status` WHERE recipient_id = ? AND status <> ? ORDER BY created_at DESC LIMIT ?")).
		WithArgs("user-b", "READ", 10).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "message_id", "recipient_id", "status", "status_timestamp"}).
			AddRow(3, 50, "user-b", "DELIVERED", now))

	rows, err := repo.UnreadForRecipient(context.Background(), "user-b", 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint(50), rows[0].MessageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_CountUnreadPerConversation(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)

	mock.ExpectQuery("SELECT messages.conversation_id AS conversation_id, COUNT").
		WithArgs("user-b", "READ").
		WillReturnRows(sqlmock.NewRows([]string{"conversation_id", "unread_count"}).
			AddRow("conv-1", 3).
			AddRow("conv-2", 1))

	counts, err := repo.CountUnreadPerConversation(context.Background(), "user-b")
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "conv-1", counts[0].ConversationID)
	assert.Equal(t, int64(3), counts[0].UnreadCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeliveryRepository_DeleteForMessagesBefore(t *testing.T) {
	gormDB, mock, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewDeliveryRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `message_delivery_status`").
		WillReturnResult(sqlmock.NewResult(0, 12))
	mock.ExpectCommit()

	deleted, err := repo.DeleteForMessagesBefore(context.Background(), time.Now().Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
