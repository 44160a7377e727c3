//go:build unit || e2e

package builder

import (
	"time"

	"petbooking/internal/domain/offering"
)

type ServiceOfferingBuilder struct {
	ID          int64
	Code        string
	Name        string
	Description string
	AllowedDays string
	StartTime   *time.Time
	EndTime     *time.Time
}

func NewServiceOfferingBuilder() *ServiceOfferingBuilder {
	opensAt := time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)
	closesAt := time.Date(0, 1, 1, 18, 0, 0, 0, time.UTC)
	return &ServiceOfferingBuilder{
		ID:          1,
		Code:        "BATH",
		Name:        "Full Bath",
		Description: "Shampoo, rinse and blow dry",
		AllowedDays: "MON,TUE,WED,THU,FRI,SAT",
		StartTime:   &opensAt,
		EndTime:     &closesAt,
	}
}

func (b *ServiceOfferingBuilder) With(mutate func(*ServiceOfferingBuilder)) *ServiceOfferingBuilder {
	mutate(b)
	return b
}

func (b *ServiceOfferingBuilder) Build() *offering.ServiceOffering {
	return offering.Reconstruct(b.ID, b.Code, b.Name, b.Description, b.AllowedDays, b.StartTime, b.EndTime)
}
