package readmodel

import "time"

// DashboardRow is the flattened reservation + pet view the owner dashboard
// renders.
type DashboardRow struct {
	ID              int64
	PetName         string
	OwnerName       string
	Phone           string
	ReservationTime time.Time
	Species         string
	Status          string
}
