// Package offering models the fixed service catalog. The scheduler consumes
// only the code, to decide buffer exemption; the day/time window metadata
// belongs to the catalog and is surfaced to clients untouched.
package offering

import "time"

type ServiceOffering struct {
	id          int64
	code        string
	name        string
	description string
	allowedDays string
	startTime   *time.Time
	endTime     *time.Time
}

func Reconstruct(id int64, code, name, description, allowedDays string, startTime, endTime *time.Time) *ServiceOffering {
	return &ServiceOffering{
		id:          id,
		code:        code,
		name:        name,
		description: description,
		allowedDays: allowedDays,
		startTime:   startTime,
		endTime:     endTime,
	}
}

// IsExempt reports whether this offering carries the configured exemption
// code. Exempt services (boarding) do not occupy a staff slot and skip
// buffer-window conflict checking entirely.
func (s *ServiceOffering) IsExempt(exemptCode string) bool {
	return s.code == exemptCode
}

func (s *ServiceOffering) ID() int64             { return s.id }
func (s *ServiceOffering) Code() string          { return s.code }
func (s *ServiceOffering) Name() string          { return s.name }
func (s *ServiceOffering) Description() string   { return s.description }
func (s *ServiceOffering) AllowedDays() string   { return s.allowedDays }
func (s *ServiceOffering) StartTime() *time.Time { return s.startTime }
func (s *ServiceOffering) EndTime() *time.Time   { return s.endTime }
