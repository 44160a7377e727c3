package response

import (
	"petbooking/internal/domain/offering"
)

type ServiceOfferingResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AllowedDays string `json:"allowedDays,omitempty"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
}

func FromServiceOffering(s *offering.ServiceOffering) *ServiceOfferingResponse {
	resp := &ServiceOfferingResponse{
		ID:          s.ID(),
		Code:        s.Code(),
		Name:        s.Name(),
		Description: s.Description(),
		AllowedDays: s.AllowedDays(),
	}
	if t := s.StartTime(); t != nil {
		resp.StartTime = t.Format("15:04")
	}
	if t := s.EndTime(); t != nil {
		resp.EndTime = t.Format("15:04")
	}
	return resp
}

func FromServiceOfferings(list []*offering.ServiceOffering) []*ServiceOfferingResponse {
	result := make([]*ServiceOfferingResponse, len(list))
	for i, s := range list {
		result[i] = FromServiceOffering(s)
	}
	return result
}
