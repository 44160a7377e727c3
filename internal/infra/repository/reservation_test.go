//go:build unit

package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"petbooking/internal/domain/reservation"
	"petbooking/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	rows, _ := mockArgs.Get(0).(pgx.Rows)
	return rows, mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

// stubRow fails every scan with a fixed error.
type stubRow struct {
	err error
}

func (r stubRow) Scan(dest ...any) error {
	return r.err
}

func storedReservation() *reservation.Reservation {
	now := time.Now()
	return reservation.Reconstruct(
		1, 1, 1,
		"010-1234-5678",
		now.Add(24*time.Hour),
		reservation.StatusBooked,
		"",
		0,
		now, now,
	)
}

func TestFindByIDNotFound(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(stubRow{err: pgx.ErrNoRows})

	repo := NewReservationRepository(dbtx, 3*time.Second)
	_, err := repo.FindByID(context.Background(), 42)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestFindByIDForUpdateLockTimeout(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.NewCommandTag("SET"), nil)
	dbtx.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(stubRow{err: &pgconn.PgError{Code: "55P03"}})

	repo := NewReservationRepository(dbtx, 3*time.Second)
	_, err := repo.FindByIDForUpdate(context.Background(), dbtx, 42)

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindLockTimeout))
}

func TestUpdateStatusWithVersionConflict(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.NewCommandTag("UPDATE 0"), nil)

	repo := NewReservationRepository(dbtx, 3*time.Second)
	err := repo.UpdateStatusWithVersion(context.Background(), dbtx, storedReservation())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindConflict))
}

func TestInsertDuplicateKey(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
		Return(stubRow{err: &pgconn.PgError{Code: "23505"}})

	repo := NewReservationRepository(dbtx, 3*time.Second)
	_, err := repo.Insert(context.Background(), dbtx, storedReservation())

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
}

func TestLockWindowCoversEveryBucket(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, mock.Anything, mock.Anything).
		Return(pgconn.NewCommandTag("SELECT 1"), nil)

	repo := NewReservationRepository(dbtx, 3*time.Second)

	// A window contained in one hour bucket takes one lock, plus the
	// lock_timeout set at the start of each call.
	at := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	require.NoError(t, repo.LockWindow(context.Background(), dbtx, reservation.NewBufferWindow(at, 20)))
	dbtx.AssertNumberOfCalls(t, "Exec", 2)

	// A window straddling a bucket boundary locks both buckets in order.
	edge := time.Date(2026, 3, 14, 15, 55, 0, 0, time.UTC)
	require.NoError(t, repo.LockWindow(context.Background(), dbtx, reservation.NewBufferWindow(edge, 30)))
	dbtx.AssertNumberOfCalls(t, "Exec", 5)
}

func TestLockWindowTimeout(t *testing.T) {
	dbtx := new(MockDBTX)
	dbtx.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.HasPrefix(q, "SET LOCAL lock_timeout")
	}), mock.Anything).Return(pgconn.NewCommandTag("SET"), nil)
	dbtx.On("Exec", mock.Anything, mock.MatchedBy(func(q string) bool {
		return strings.Contains(q, "pg_advisory_xact_lock")
	}), mock.Anything).Return(pgconn.NewCommandTag(""), &pgconn.PgError{Code: "55P03"})

	repo := NewReservationRepository(dbtx, 3*time.Second)
	at := time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)
	err := repo.LockWindow(context.Background(), dbtx, reservation.NewBufferWindow(at, 20))

	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindLockTimeout))
}
