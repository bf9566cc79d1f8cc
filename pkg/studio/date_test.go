package studio

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"date only", `"2025-08-30"`, "2025-08-30", false},
		{"RFC3339", `"2025-08-30T15:04:05Z"`, "2025-08-30", false},
		{"mongo style millis", `"2025-08-30T06:00:00.000Z"`, "2025-08-30", false},
		{"datetime without timezone", `"2025-08-30T15:04:05"`, "2025-08-30", false},
		{"null", `null`, "", false},
		{"empty string", `""`, "", false},
		{"invalid", `"next tuesday"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_InSchedule(t *testing.T) {
	raw := `{"id": "s-1", "date": "2025-09-01", "startTime": "07:00", "endTime": "08:00", "capacity": 12, "bookedCount": 12}`

	var s Schedule
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, NewDate(2025, time.September, 1), s.Date)
	assert.Equal(t, 0, s.SpotsLeft())

	out, err := json.Marshal(MarkAttendanceParams{UserID: "u-1", ScheduleID: "s-1", Date: s.Date, Status: AttendancePresent})
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId": "u-1", "scheduleId": "s-1", "date": "2025-09-01", "status": "present"}`, string(out))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2025-02-28", d.String())

	_, err = ParseDate("28/02/2025")
	assert.Error(t, err)

	out, err := json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
