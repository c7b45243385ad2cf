package models

import (
	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/pkg/types"
)

// Request модели

// WorkingHoursInput рабочее окно на день недели (0 = воскресенье)
type WorkingHoursInput struct {
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"` // "HH:mm"
	EndTime   string `json:"endTime"`   // "HH:mm"
	Active    bool   `json:"active"`
}

// ReplaceWorkingHoursRequest полная замена графика мастера
type ReplaceWorkingHoursRequest struct {
	StaffID string              `json:"staffId"`
	Hours   []WorkingHoursInput `json:"hours"`
}

// ToDomain конвертирует запрос в domain модели
func (r *ReplaceWorkingHoursRequest) ToDomain() ([]domain.WorkingHours, error) {
	result := make([]domain.WorkingHours, 0, len(r.Hours))
	for _, h := range r.Hours {
		start, err := types.NewTimeStringFromString(h.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromString(h.EndTime)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.WorkingHours{
			StaffID:   r.StaffID,
			Weekday:   h.Weekday,
			StartTime: start,
			EndTime:   end,
			Active:    h.Active,
		})
	}
	return result, nil
}

// Response модели

// StaffResponse мастер
type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StaffListResponse список мастеров
type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
}

// WorkingHoursResponse рабочее окно
type WorkingHoursResponse struct {
	ID        string `json:"id"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// WeekResponse график мастера на неделю
type WeekResponse struct {
	StaffID string                 `json:"staffId"`
	Hours   []WorkingHoursResponse `json:"hours"`
}

// FromDomainStaffList конвертирует список мастеров в DTO
func FromDomainStaffList(list []*domain.Staff) *StaffListResponse {
	resp := &StaffListResponse{Staff: make([]StaffResponse, 0, len(list))}
	for _, st := range list {
		resp.Staff = append(resp.Staff, StaffResponse{ID: st.ID, Name: st.Name})
	}
	return resp
}

// FromDomainWeek конвертирует график в DTO
func FromDomainWeek(staffID string, hours []*domain.WorkingHours) *WeekResponse {
	resp := &WeekResponse{StaffID: staffID, Hours: make([]WorkingHoursResponse, 0, len(hours))}
	for _, h := range hours {
		resp.Hours = append(resp.Hours, WorkingHoursResponse{
			ID:        h.ID,
			Weekday:   h.Weekday,
			StartTime: h.StartTime.String(),
			EndTime:   h.EndTime.String(),
			Active:    h.Active,
		})
	}
	return resp
}
