package history

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swasthyasetu/health-assistant/internal/escalation"
)

func TestStoreSaveConversationTurn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fixed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	store := NewStore(db).WithClock(func() time.Time { return fixed })

	mock.ExpectExec("INSERT INTO conversation_turns").
		WithArgs("user-1", "fever", "Rest and drink fluids.", fixed).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.SaveConversationTurn(context.Background(), "user-1", "fever", "Rest and drink fluids.")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListTurns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "inbound", "outbound", "created_at"}).
		AddRow(int64(2), "user-1", "headache", "Rest in a quiet room.", now).
		AddRow(int64(1), "user-1", "fever", "Rest and drink fluids.", now.Add(-time.Hour))

	mock.ExpectQuery("SELECT id, user_id, inbound, outbound, created_at").
		WithArgs("user-1", 10).
		WillReturnRows(rows)

	turns, err := store.ListTurns(context.Background(), "user-1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "headache", turns[0].Inbound)
	assert.Equal(t, int64(1), turns[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreSaveEscalation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	rec := escalation.Record{
		ID:             uuid.New(),
		UserID:         "user-2",
		SymptomsText:   "chest pain",
		ResponderName:  "Mamta Singh",
		ResponderPhone: "9437123457",
		EscalationType: "chest_pain",
		Priority:       "high",
		Status:         escalation.StatusEscalated,
		CreatedAt:      time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO escalations").
		WithArgs(rec.ID, rec.UserID, rec.SymptomsText, rec.ResponderName, rec.ResponderPhone,
			rec.EscalationType, rec.Priority, rec.Status, rec.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, store.SaveEscalation(context.Background(), rec))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetEscalationNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	id := uuid.New()
	mock.ExpectQuery("SELECT id, user_id, symptoms_text").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec, err := store.GetEscalation(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStoreCountEscalationsSince(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	cutoff := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := store.CountEscalationsSince(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestStorePurgeTurnsBefore(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewStore(db)
	cutoff := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("DELETE FROM conversation_turns").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 42))

	n, err := store.PurgeTurnsBefore(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	fixed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	require.NoError(t, store.SaveConversationTurn(ctx, "u1", "fever", "rest"))
	require.NoError(t, store.SaveConversationTurn(ctx, "u2", "cough", "honey"))
	require.NoError(t, store.SaveConversationTurn(ctx, "u1", "headache", "quiet room"))

	turns, err := store.ListTurns(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, "headache", turns[0].Inbound)

	rec := escalation.Record{ID: uuid.New(), UserID: "u1", Priority: "high", CreatedAt: fixed}
	require.NoError(t, store.SaveEscalation(ctx, rec))

	got, err := store.GetEscalation(ctx, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)

	n, err := store.CountEscalationsSince(ctx, fixed.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	removed, err := store.PurgeTurnsBefore(ctx, fixed.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
