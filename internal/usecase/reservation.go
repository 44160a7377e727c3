package usecase

import (
	"context"
	"errors"
	"time"

	"petbooking/internal/domain/offering"
	"petbooking/internal/domain/pet"
	"petbooking/internal/domain/reservation"
	"petbooking/internal/infra"
	"petbooking/internal/infra/db"
	"petbooking/internal/pkg/clock"
	"petbooking/internal/pkg/config"
	"petbooking/internal/pkg/errs"
	"petbooking/internal/usecase/readmodel"
	"petbooking/internal/usecase/shared"
)

//go:generate mockgen -source=reservation.go -destination=../../tests/mock/usecase/reservation.go -package=usecasemock

var (
	ErrPetNotFound         = errors.New("pet not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrBookingConflict     = errors.New("booking conflict")
	ErrPhoneMismatch       = errors.New("phone number does not match")
	ErrInvalidState        = errors.New("reservation is not in a valid state for this operation")
	ErrStoreBusy           = errors.New("reservation store is busy")
	ErrVersionConflict     = errors.New("reservation was modified concurrently")
	ErrDomainValidation    = errors.New("domain validation error")
	ErrDatabaseOperation   = errors.New("database operation failed")
)

// versionRetries bounds the transparent re-fetch-and-retry on optimistic
// version conflicts before the error reaches the caller.
const versionRetries = 3

// ReservationStore is the persistence contract the scheduler consumes.
// Lock-taking methods run against a transaction; plain reads do not.
type ReservationStore interface {
	FindByID(ctx context.Context, id int64) (*reservation.Reservation, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id int64) (*reservation.Reservation, error)
	LockWindow(ctx context.Context, tx db.DBTX, window reservation.BufferWindow) error
	ExistsConflict(ctx context.Context, tx db.DBTX, window reservation.BufferWindow, status reservation.Status, exemptServiceCode string) (bool, error)
	Insert(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (*reservation.Reservation, error)
	UpdateStatusWithVersion(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindAll(ctx context.Context) ([]*reservation.Reservation, error)
	FindInRange(ctx context.Context, start, end time.Time) ([]*reservation.Reservation, error)
	FindByPet(ctx context.Context, petID int64) ([]*reservation.Reservation, error)
	FindDashboard(ctx context.Context, phone string, day *time.Time) ([]*readmodel.DashboardRow, error)
}

type PetLookup interface {
	FindByID(ctx context.Context, id int64) (*pet.Pet, error)
}

type ServiceLookup interface {
	FindByID(ctx context.Context, id int64) (*offering.ServiceOffering, error)
}

type CreateReservationParams struct {
	PetID         int64
	ServiceID     int64
	RequestedTime time.Time
	Notes         string
}

type ReservationUseCase interface {
	Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error)
	Cancel(ctx context.Context, id int64, phone string) error
	Complete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*reservation.Reservation, error)
	ListByDate(ctx context.Context, day time.Time) ([]*reservation.Reservation, error)
	ListByPet(ctx context.Context, petID int64) ([]*reservation.Reservation, error)
	Dashboard(ctx context.Context, phone string, day *time.Time) ([]*readmodel.DashboardRow, error)
}

type reservationUseCaseImpl struct {
	reservations ReservationStore
	pets         PetLookup
	services     ServiceLookup
	tx           shared.TxRunner
	clock        clock.Clock
	cfg          config.BookingConfig
}

func NewReservationUseCase(
	reservations ReservationStore,
	pets PetLookup,
	services ServiceLookup,
	tx shared.TxRunner,
	clk clock.Clock,
	cfg config.BookingConfig,
) ReservationUseCase {
	return &reservationUseCaseImpl{
		reservations: reservations,
		pets:         pets,
		services:     services,
		tx:           tx,
		clock:        clk,
		cfg:          cfg,
	}
}

// Create admits a new reservation. For buffer-subject services the conflict
// check and the insert run in one transaction, serialized per time region by
// LockWindow, so two concurrent requests for overlapping windows can never
// both commit: the second either sees the first's row or waits for its
// transaction to resolve.
func (u *reservationUseCaseImpl) Create(ctx context.Context, params CreateReservationParams) (*reservation.Reservation, error) {
	if params.RequestedTime.Before(u.clock.Now()) {
		return nil, errs.Mark(errs.New("reservation time is in the past"), ErrDomainValidation)
	}

	petEntity, err := u.pets.FindByID(ctx, params.PetID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	serviceEntity, err := u.services.FindByID(ctx, params.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	entity, err := reservation.NewReservation(
		params.PetID,
		params.ServiceID,
		petEntity.OwnerPhone(),
		params.RequestedTime,
		params.Notes,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	exempt := serviceEntity.IsExempt(u.cfg.ExemptServiceCode)
	window := reservation.NewBufferWindow(params.RequestedTime, u.cfg.BufferMinutes)

	var created *reservation.Reservation
	err = u.tx.InTx(ctx, func(tx db.DBTX) error {
		if !exempt {
			if err := u.reservations.LockWindow(ctx, tx, window); err != nil {
				return err
			}

			clash, err := u.reservations.ExistsConflict(ctx, tx, window, reservation.StatusBooked, u.cfg.ExemptServiceCode)
			if err != nil {
				return err
			}
			if clash {
				return errs.Mark(
					errs.Newf("another reservation is already within %d minutes of the requested time", u.cfg.BufferMinutes),
					ErrBookingConflict,
				)
			}
		}

		created, err = u.reservations.Insert(ctx, tx, entity)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			return nil, err
		}
		if infra.IsKind(err, infra.KindLockTimeout) {
			return nil, errs.Mark(err, ErrStoreBusy)
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	return created, nil
}

// Cancel transitions a BOOKED reservation to CANCELED. The row is fetched
// under an exclusive lock so concurrent mutations of the same reservation
// serialize; the version check backstops the lock. Callers must present the
// phone recorded at creation.
func (u *reservationUseCaseImpl) Cancel(ctx context.Context, id int64, phone string) error {
	return u.mutateWithRetry(ctx, id, func(res *reservation.Reservation) error {
		if !res.PhoneMatches(phone) {
			return ErrPhoneMismatch
		}
		if err := res.Cancel(); err != nil {
			return errs.Mark(err, ErrInvalidState)
		}
		return nil
	})
}

// Complete transitions a BOOKED reservation to COMPLETED. Completing a
// reservation that already left BOOKED (canceled or completed) is rejected;
// the state machine is one-way.
func (u *reservationUseCaseImpl) Complete(ctx context.Context, id int64) error {
	return u.mutateWithRetry(ctx, id, func(res *reservation.Reservation) error {
		if err := res.Complete(); err != nil {
			return errs.Mark(err, ErrInvalidState)
		}
		return nil
	})
}

// mutateWithRetry re-fetches the row under lock, re-validates via mutate and
// writes with a version check. A lost version race is benign, so it retries a
// bounded number of times before surfacing ErrVersionConflict.
func (u *reservationUseCaseImpl) mutateWithRetry(ctx context.Context, id int64, mutate func(*reservation.Reservation) error) error {
	var lastErr error
	for attempt := 0; attempt <= versionRetries; attempt++ {
		err := u.tx.InTx(ctx, func(tx db.DBTX) error {
			res, err := u.reservations.FindByIDForUpdate(ctx, tx, id)
			if err != nil {
				return err
			}
			if err := mutate(res); err != nil {
				return err
			}
			return u.reservations.UpdateStatusWithVersion(ctx, tx, res)
		})
		if err == nil {
			return nil
		}
		if infra.IsKind(err, infra.KindConflict) {
			lastErr = errs.Mark(err, ErrVersionConflict)
			continue
		}
		return mapMutationError(err)
	}
	return lastErr
}

func mapMutationError(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return ErrReservationNotFound
	case infra.IsKind(err, infra.KindLockTimeout):
		return errs.Mark(err, ErrStoreBusy)
	case errors.Is(err, ErrPhoneMismatch),
		errors.Is(err, ErrInvalidState):
		return err
	default:
		return errs.Mark(err, ErrDatabaseOperation)
	}
}

func (u *reservationUseCaseImpl) List(ctx context.Context) ([]*reservation.Reservation, error) {
	result, err := u.reservations.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return result, nil
}

// ListByDate returns the reservations of one calendar day in the server's
// timezone.
func (u *reservationUseCaseImpl) ListByDate(ctx context.Context, day time.Time) ([]*reservation.Reservation, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	result, err := u.reservations.FindInRange(ctx, start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return result, nil
}

func (u *reservationUseCaseImpl) ListByPet(ctx context.Context, petID int64) ([]*reservation.Reservation, error) {
	result, err := u.reservations.FindByPet(ctx, petID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return result, nil
}

func (u *reservationUseCaseImpl) Dashboard(ctx context.Context, phone string, day *time.Time) ([]*readmodel.DashboardRow, error) {
	result, err := u.reservations.FindDashboard(ctx, phone, day)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}
	return result, nil
}
