package reservation

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrMissingPet        = errors.New("reservation requires a pet")
	ErrMissingService    = errors.New("reservation requires a service")
	ErrMissingOwnerPhone = errors.New("reservation requires an owner phone")
	ErrZeroTime          = errors.New("reservation time must be set")
	ErrNotCancelable     = errors.New("only booked reservations can be canceled")
	ErrNotCompletable    = errors.New("only booked reservations can be completed")
)

// Reservation is the aggregate guarded by the scheduler. Pet, service,
// owner phone and reservation time are immutable after creation; only
// the status (and with it the version counter) ever changes.
type Reservation struct {
	id              int64
	petID           int64
	serviceID       int64
	ownerPhone      string
	reservationTime time.Time
	status          Status
	notes           string
	version         int32
	createdAt       time.Time
	updatedAt       time.Time
}

// NewReservation builds a yet-unpersisted reservation in the BOOKED state.
// The owner phone is copied from the pet record at creation time and is the
// credential for any later cancel.
func NewReservation(petID, serviceID int64, ownerPhone string, at time.Time, notes string) (*Reservation, error) {
	if petID <= 0 {
		return nil, ErrMissingPet
	}
	if serviceID <= 0 {
		return nil, ErrMissingService
	}
	if strings.TrimSpace(ownerPhone) == "" {
		return nil, ErrMissingOwnerPhone
	}
	if at.IsZero() {
		return nil, ErrZeroTime
	}

	return &Reservation{
		petID:           petID,
		serviceID:       serviceID,
		ownerPhone:      ownerPhone,
		reservationTime: at,
		status:          StatusBooked,
		notes:           strings.TrimSpace(notes),
	}, nil
}

// Reconstruct rebuilds an entity from a persisted row without validation.
func Reconstruct(
	id, petID, serviceID int64,
	ownerPhone string,
	reservationTime time.Time,
	status Status,
	notes string,
	version int32,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		petID:           petID,
		serviceID:       serviceID,
		ownerPhone:      ownerPhone,
		reservationTime: reservationTime,
		status:          status,
		notes:           notes,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Cancel moves BOOKED to CANCELED. Phone authorization is the caller's
// concern; the entity only guards the state machine.
func (r *Reservation) Cancel() error {
	if !r.status.CanTransitionTo(StatusCanceled) {
		return ErrNotCancelable
	}
	r.status = StatusCanceled
	return nil
}

// Complete moves BOOKED to COMPLETED. Completing a canceled reservation is
// rejected; terminal statuses never transition again.
func (r *Reservation) Complete() error {
	if !r.status.CanTransitionTo(StatusCompleted) {
		return ErrNotCompletable
	}
	r.status = StatusCompleted
	return nil
}

func (r *Reservation) PhoneMatches(phone string) bool {
	return r.ownerPhone == phone
}

func (r *Reservation) IsBooked() bool {
	return r.status == StatusBooked
}

func (r *Reservation) ID() int64                  { return r.id }
func (r *Reservation) PetID() int64               { return r.petID }
func (r *Reservation) ServiceID() int64           { return r.serviceID }
func (r *Reservation) OwnerPhone() string         { return r.ownerPhone }
func (r *Reservation) ReservationTime() time.Time { return r.reservationTime }
func (r *Reservation) Status() Status             { return r.status }
func (r *Reservation) Notes() string              { return r.notes }
func (r *Reservation) Version() int32             { return r.version }
func (r *Reservation) CreatedAt() time.Time       { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time       { return r.updatedAt }
