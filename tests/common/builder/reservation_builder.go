//go:build unit || e2e

package builder

import (
	"time"

	"petbooking/internal/domain/pet"
	"petbooking/internal/domain/reservation"
)

type ReservationBuilder struct {
	ID              int64
	PetID           int64
	ServiceID       int64
	OwnerPhone      string
	ReservationTime time.Time
	Status          reservation.Status
	Notes           string
	Version         int32
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().Truncate(time.Second)
	return &ReservationBuilder{
		ID:              1,
		PetID:           1,
		ServiceID:       1,
		OwnerPhone:      "010-1234-5678",
		ReservationTime: now.Add(24 * time.Hour),
		Status:          reservation.StatusBooked,
		Notes:           "first visit",
		Version:         0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	return reservation.NewReservation(b.PetID, b.ServiceID, b.OwnerPhone, b.ReservationTime, b.Notes)
}

func (b *ReservationBuilder) BuildStored() *reservation.Reservation {
	return reservation.Reconstruct(
		b.ID, b.PetID, b.ServiceID,
		b.OwnerPhone,
		b.ReservationTime,
		b.Status,
		b.Notes,
		b.Version,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *ReservationBuilder) BuildCreateRequestBody() map[string]any {
	return map[string]any{
		"petId":           b.PetID,
		"serviceId":       b.ServiceID,
		"reservationTime": b.ReservationTime.Format(time.RFC3339),
		"notes":           b.Notes,
	}
}

func (b *ReservationBuilder) BuildPet() *pet.Pet {
	age := 3
	return pet.Reconstruct(b.PetID, "Oreo", "DOG", "Maltese", &age, "Kim Minji", b.OwnerPhone)
}
