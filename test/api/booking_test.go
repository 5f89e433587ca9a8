package api_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextMonday returns the next Monday at the given wall-clock hour, UTC.
func nextMonday(hour int) time.Time {
	now := time.Now().UTC()
	days := (int(time.Monday) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	day := now.AddDate(0, 0, days)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
}

func TestBookingFlow(t *testing.T) {
	requireServer(t)
	if authToken == "" || doctorID == "" || clinicID == "" || patientID == "" {
		t.Skip("test doctor/clinic/patient not configured")
	}

	// Make sure Monday morning is available.
	saveResp := makeRequest("PUT", scheduleBase()+"/availability", map[string]interface{}{
		"ranges": []map[string]interface{}{
			{"day_of_week": 1, "start_time": "09:00", "end_time": "12:00"},
		},
	}, authToken)
	require.True(t, saveResp.IsSuccess(), "failed to save availability: %s", saveResp.Message)

	start := nextMonday(10)
	end := start.Add(30 * time.Minute)

	createResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"doctor_id":  doctorID,
		"clinic_id":  clinicID,
		"patient_id": patientID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
		"reason":     "checkup",
	}, authToken)
	require.True(t, createResp.IsSuccess(), "failed to create booking: %s", createResp.Message)
	bookingID := createResp.GetString("id")
	require.NotEmpty(t, bookingID)
	assert.Equal(t, "pending", createResp.GetString("status"))

	// The occupied slot disappears from the advisory list.
	slotsResp := makeRequest("GET", scheduleBase()+"/slots?date="+start.Format("2006-01-02"), nil, authToken)
	require.True(t, slotsResp.IsSuccess())
	for _, raw := range slotsResp.List {
		slot, ok := raw.(map[string]interface{})
		require.True(t, ok)
		assert.NotEqual(t, start.Format(time.RFC3339), slot["start"])
	}

	// An overlapping request is rejected with the conflicting interval.
	conflictResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"doctor_id":  doctorID,
		"clinic_id":  clinicID,
		"patient_id": patientID,
		"start_time": start.Add(15 * time.Minute).Format(time.RFC3339),
		"end_time":   end.Add(15 * time.Minute).Format(time.RFC3339),
	}, authToken)
	assert.Equal(t, http.StatusConflict, conflictResp.StatusCode)

	// Confirm, then complete.
	confirmResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/status", bookingID), map[string]interface{}{
		"status": "confirmed",
	}, authToken)
	require.True(t, confirmResp.IsSuccess(), "failed to confirm: %s", confirmResp.Message)

	completeResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/status", bookingID), map[string]interface{}{
		"status": "completed",
	}, authToken)
	require.True(t, completeResp.IsSuccess(), "failed to complete: %s", completeResp.Message)

	// Terminal states reject further transitions.
	rejectResp := makeRequest("PATCH", fmt.Sprintf("/bookings/%s/status", bookingID), map[string]interface{}{
		"status": "cancelled",
	}, authToken)
	assert.Equal(t, http.StatusBadRequest, rejectResp.StatusCode)

	// The window is free again after completion.
	rebookResp := makeRequest("POST", "/bookings", map[string]interface{}{
		"doctor_id":  doctorID,
		"clinic_id":  clinicID,
		"patient_id": patientID,
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}, authToken)
	assert.True(t, rebookResp.IsSuccess(), "rebooking after completion failed: %s", rebookResp.Message)
}

func TestBookingStatusValidation(t *testing.T) {
	requireServer(t)
	if authToken == "" {
		t.Skip("auth not configured")
	}

	resp := makeRequest("PATCH", "/bookings/00000000-0000-0000-0000-000000000000/status", map[string]interface{}{
		"status": "rescheduled",
	}, authToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
