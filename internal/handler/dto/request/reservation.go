package request

import (
	"strings"
	"time"
)

type CreateReservationRequest struct {
	PetID           int64     `json:"petId" binding:"required"`
	ServiceID       int64     `json:"serviceId" binding:"required"`
	ReservationTime time.Time `json:"reservationTime" binding:"required"`
	Notes           string    `json:"notes"`
}

func (r CreateReservationRequest) TrimmedNotes() string {
	return strings.TrimSpace(r.Notes)
}

// CancelReservationRequest carries the phone the customer gave at booking
// time; it is the cancel credential.
type CancelReservationRequest struct {
	Phone string `json:"phone" binding:"required"`
}
