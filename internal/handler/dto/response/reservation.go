package response

import (
	"time"

	"petbooking/internal/domain/reservation"
	"petbooking/internal/usecase/readmodel"
)

type ReservationResponse struct {
	ID              int64     `json:"id"`
	PetID           int64     `json:"petId"`
	ServiceID       int64     `json:"serviceId"`
	OwnerPhone      string    `json:"ownerPhone"`
	ReservationTime time.Time `json:"reservationTime"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	Version         int32     `json:"version"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:              r.ID(),
		PetID:           r.PetID(),
		ServiceID:       r.ServiceID(),
		OwnerPhone:      r.OwnerPhone(),
		ReservationTime: r.ReservationTime(),
		Status:          r.Status().String(),
		Notes:           r.Notes(),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

func FromReservations(list []*reservation.Reservation) []*ReservationResponse {
	result := make([]*ReservationResponse, len(list))
	for i, r := range list {
		result[i] = FromReservation(r)
	}
	return result
}

// DashboardEntry splits the timestamp into date and time the way the owner
// dashboard renders it.
type DashboardEntry struct {
	ID        int64  `json:"id"`
	PetName   string `json:"petName"`
	OwnerName string `json:"ownerName"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Species   string `json:"species"`
	Status    string `json:"status"`
}

func FromDashboardRow(row *readmodel.DashboardRow) *DashboardEntry {
	return &DashboardEntry{
		ID:        row.ID,
		PetName:   row.PetName,
		OwnerName: row.OwnerName,
		Phone:     row.Phone,
		Date:      row.ReservationTime.Format("2006-01-02"),
		Time:      row.ReservationTime.Format("15:04"),
		Species:   row.Species,
		Status:    row.Status,
	}
}

func FromDashboardRows(rows []*readmodel.DashboardRow) []*DashboardEntry {
	result := make([]*DashboardEntry, len(rows))
	for i, row := range rows {
		result[i] = FromDashboardRow(row)
	}
	return result
}
