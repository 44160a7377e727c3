package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petbooking/internal/domain/reservation"
	"petbooking/internal/infra"
	"petbooking/internal/infra/db"
	"petbooking/internal/usecase/readmodel"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeLockNotAvailable = "55P03"
	pgErrCodeUniqueViolation  = "23505"

	// Advisory lock namespace for reservation admission control. Buckets are
	// hour-sized so creates in unrelated time slots never serialize against
	// each other.
	admissionLockClass = 0x52455356 // "RESV"
	admissionBucket    = time.Hour
)

const reservationColumns = `id, pet_id, service_id, owner_phone, reservation_time, status, notes, version, created_at, updated_at`

type ReservationRepository struct {
	pool        db.DBTX
	lockTimeout time.Duration
}

func NewReservationRepository(pool db.DBTX, lockTimeout time.Duration) *ReservationRepository {
	return &ReservationRepository{
		pool:        pool,
		lockTimeout: lockTimeout,
	}
}

func (r *ReservationRepository) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)

	res, err := scanReservation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	return res, nil
}

// FindByIDForUpdate acquires a row-level exclusive lock held until the
// surrounding transaction commits or rolls back. The lock wait is bounded by
// lock_timeout; exceeding it surfaces as KindLockTimeout so callers can fail
// fast instead of hanging.
func (r *ReservationRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id int64) (*reservation.Reservation, error) {
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return nil, infra.WrapRepoErr("failed to set lock timeout", err)
	}

	row := tx.QueryRow(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = $1 FOR UPDATE`, id)

	res, err := scanReservation(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		case isPgErrCode(err, pgErrCodeLockNotAvailable):
			return nil, infra.WrapRepoErr("reservation row is locked", err, infra.KindLockTimeout)
		default:
			return nil, infra.WrapRepoErr("failed to lock reservation", err)
		}
	}
	return res, nil
}

// LockWindow serializes admission control for the given buffer window.
// Advisory xact locks are taken on every hour bucket the window overlaps, in
// ascending order to avoid deadlock between concurrent creates; the locks are
// released automatically when the transaction ends. Creates whose windows
// share no bucket proceed in parallel. The wait per lock is bounded by
// lock_timeout; exceeding it surfaces as KindLockTimeout.
func (r *ReservationRepository) LockWindow(ctx context.Context, tx db.DBTX, window reservation.BufferWindow) error {
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}

	first := window.Start().Unix() / int64(admissionBucket/time.Second)
	last := window.End().Unix() / int64(admissionBucket/time.Second)

	for bucket := first; bucket <= last; bucket++ {
		if _, err := tx.Exec(ctx,
			`SELECT pg_advisory_xact_lock($1, $2)`,
			int32(admissionLockClass), int32(bucket)); err != nil {
			if isPgErrCode(err, pgErrCodeLockNotAvailable) {
				return infra.WrapRepoErr("admission lock wait exceeded", err, infra.KindLockTimeout)
			}
			return infra.WrapRepoErr("failed to acquire admission lock", err)
		}
	}
	return nil
}

// ExistsConflict reports whether any reservation with the given status and a
// non-exempt service falls inside the window, both bounds inclusive. Must run
// in the same transaction as the subsequent insert, after LockWindow, so the
// check-then-act is atomic.
func (r *ReservationRepository) ExistsConflict(ctx context.Context, tx db.DBTX, window reservation.BufferWindow, status reservation.Status, exemptServiceCode string) (bool, error) {
	var exists bool
	err := tx.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM reservations r
			JOIN services s ON s.id = r.service_id
			WHERE r.reservation_time >= $1
			  AND r.reservation_time <= $2
			  AND r.status = $3
			  AND s.code <> $4
		)`,
		window.Start(), window.End(), status.String(), exemptServiceCode,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation conflict", err)
	}
	return exists, nil
}

// Insert persists a new reservation. The store assigns id, version 0 and the
// timestamps; the returned entity carries them.
func (r *ReservationRepository) Insert(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (*reservation.Reservation, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO reservations (pet_id, service_id, owner_phone, reservation_time, status, notes, version)
		VALUES ($1, $2, $3, $4, $5, $6, 0)
		RETURNING `+reservationColumns,
		res.PetID(), res.ServiceID(), res.OwnerPhone(), res.ReservationTime(), res.Status().String(), nullIfEmpty(res.Notes()),
	)

	created, err := scanReservation(row)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return nil, infra.WrapRepoErr("duplicate reservation", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to insert reservation", err)
	}
	return created, nil
}

// UpdateStatusWithVersion is a compare-and-swap on the version counter: the
// row is written only if nobody committed a newer version since the entity
// was read. A zero row count means a lost race.
func (r *ReservationRepository) UpdateStatusWithVersion(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	tag, err := tx.Exec(ctx, `
		UPDATE reservations
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`,
		res.ID(), res.Status().String(), res.Version(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation version changed", nil, infra.KindConflict)
	}
	return nil
}

func (r *ReservationRepository) FindAll(ctx context.Context) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY reservation_time`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return collectReservations(rows)
}

// FindInRange returns reservations with start <= reservation_time < end.
// Plain read, not concurrency-sensitive.
func (r *ReservationRepository) FindInRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE reservation_time >= $1 AND reservation_time < $2
		ORDER BY reservation_time`,
		start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations in range", err)
	}
	return collectReservations(rows)
}

func (r *ReservationRepository) FindByPet(ctx context.Context, petID int64) ([]*reservation.Reservation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE pet_id = $1
		ORDER BY reservation_time`,
		petID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by pet", err)
	}
	return collectReservations(rows)
}

// FindDashboard joins pet details for the owner dashboard, optionally
// filtered by a phone substring and a calendar day.
func (r *ReservationRepository) FindDashboard(ctx context.Context, phone string, day *time.Time) ([]*readmodel.DashboardRow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.id, p.name, p.owner_name, r.owner_phone, r.reservation_time, p.species, r.status
		FROM reservations r
		JOIN pets p ON p.id = r.pet_id
		WHERE ($1 = '' OR r.owner_phone LIKE '%' || $1 || '%')
		  AND ($2::date IS NULL OR r.reservation_time::date = $2::date)
		ORDER BY r.reservation_time`,
		phone, day)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query dashboard", err)
	}
	defer rows.Close()

	var result []*readmodel.DashboardRow
	for rows.Next() {
		var row readmodel.DashboardRow
		if err := rows.Scan(&row.ID, &row.PetName, &row.OwnerName, &row.Phone, &row.ReservationTime, &row.Species, &row.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan dashboard row", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read dashboard rows", err)
	}
	return result, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, petID, serviceID int64
		ownerPhone, status   string
		reservationTime      time.Time
		notes                *string
		version              int32
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &petID, &serviceID, &ownerPhone, &reservationTime, &status, &notes, &version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	noteText := ""
	if notes != nil {
		noteText = *notes
	}

	return reservation.Reconstruct(
		id, petID, serviceID,
		ownerPhone,
		reservationTime,
		reservation.Status(status),
		noteText,
		version,
		createdAt, updatedAt,
	), nil
}

func collectReservations(rows pgx.Rows) ([]*reservation.Reservation, error) {
	defer rows.Close()

	var result []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservations", err)
	}
	return result, nil
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
