package studio

import (
	"context"
	"fmt"
	"net/url"
)

// attendanceService implements the AttendanceService interface
type attendanceService struct {
	resource[AttendanceRecord]
}

// List retrieves attendance records matching filter
func (s *attendanceService) List(ctx context.Context, filter *AttendanceFilter) ([]*AttendanceRecord, error) {
	return s.list(ctx, filter.query())
}

// ForUser retrieves one member's attendance
func (s *attendanceService) ForUser(ctx context.Context, userID string) ([]*AttendanceRecord, error) {
	return s.list(ctx, (&AttendanceFilter{UserID: userID}).query())
}

// Mark records attendance
func (s *attendanceService) Mark(ctx context.Context, params *MarkAttendanceParams) (*AttendanceRecord, error) {
	if params == nil {
		return nil, fmt.Errorf("attendance params are required")
	}
	return s.create(ctx, params)
}

// Update changes the status of a record
func (s *attendanceService) Update(ctx context.Context, recordID string, status AttendanceStatus) (*AttendanceRecord, error) {
	return s.update(ctx, recordID, map[string]AttendanceStatus{"status": status})
}

func (f *AttendanceFilter) query() url.Values {
	if f == nil {
		return nil
	}

	q := url.Values{}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	if f.ScheduleID != "" {
		q.Set("scheduleId", f.ScheduleID)
	}
	if f.From != nil {
		q.Set("from", f.From.String())
	}
	if f.To != nil {
		q.Set("to", f.To.String())
	}
	return q
}
