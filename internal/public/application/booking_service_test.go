package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var fixedRef = uuid.MustParse("0001e240-0000-4000-8000-000000000000")

func newTestBookingService(t *testing.T) (BookingService, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	svc := NewBookingService(BookingConfig{
		Directory: testDirectory(t),
		Logger:    zap.New(core),
		Location:  time.UTC,
		Clock:     func() time.Time { return time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC) },
		NewID:     func() uuid.UUID { return fixedRef },
	})
	return svc, logs
}

func validBooking() BookAppointmentCommand {
	return BookAppointmentCommand{
		DoctorID: "1",
		Date:     "2024-06-13",
		Time:     "10:30 AM",
		Name:     "John Doe",
		Email:    "john.doe@example.com",
		Phone:    "+1 (555) 123-4567",
	}
}

func TestBookReturnsConfirmation(t *testing.T) {
	svc, logs := newTestBookingService(t)

	confirmation, err := svc.Book(context.Background(), validBooking())
	require.NoError(t, err)

	assert.Equal(t, fixedRef.String(), confirmation.Reference)
	assert.Equal(t, "APT-2024-123456", confirmation.ConfirmationNumber)
	assert.Equal(t, "Dr. Sarah Johnson", confirmation.DoctorName)
	assert.Equal(t, "Cardiology", confirmation.Specialty)
	assert.Equal(t, "City General Hospital", confirmation.Hospital)
	assert.Equal(t, "Thursday, June 13, 2024", confirmation.Date)
	assert.Equal(t, "10:30 AM", confirmation.Time)
	assert.Equal(t, "John Doe", confirmation.PatientName)

	entries := logs.FilterMessage("appointment accepted").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.EqualValues(t, 1, fields["doctorId"])
	assert.NotContains(t, fields, "email")
	assert.NotContains(t, fields, "phone")
}

func TestBookRejectsToday(t *testing.T) {
	svc, _ := newTestBookingService(t)
	cmd := validBooking()
	cmd.Date = "2024-06-10"

	_, err := svc.Book(context.Background(), cmd)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, "Please select a date after today", verr.Fields["date"])
}

func TestBookAllowsTomorrow(t *testing.T) {
	svc, _ := newTestBookingService(t)
	cmd := validBooking()
	cmd.Date = "2024-06-11"

	_, err := svc.Book(context.Background(), cmd)
	assert.NoError(t, err)
}

func TestBookTodayFollowsConfiguredTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	svc := NewBookingService(BookingConfig{
		Directory: testDirectory(t),
		Location:  tokyo,
		// 2024-06-10 15:00 UTC は東京では 2024-06-11 00:00
		Clock: func() time.Time { return time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC) },
	})

	cmd := validBooking()
	cmd.Date = "2024-06-11"
	_, err = svc.Book(context.Background(), cmd)
	require.Error(t, err)

	cmd.Date = "2024-06-12"
	_, err = svc.Book(context.Background(), cmd)
	assert.NoError(t, err)
}

func TestBookUnknownDoctor(t *testing.T) {
	svc, _ := newTestBookingService(t)

	for _, id := range []string{"999", "0", "-1", "abc", "NaN"} {
		cmd := validBooking()
		cmd.DoctorID = id
		_, err := svc.Book(context.Background(), cmd)
		assert.True(t, errors.Is(err, ErrDoctorNotFound), "id %q: %v", id, err)
	}
}

func TestBookValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*BookAppointmentCommand)
		field  string
	}{
		{name: "missing doctor", modify: func(c *BookAppointmentCommand) { c.DoctorID = " " }, field: "doctorId"},
		{name: "missing name", modify: func(c *BookAppointmentCommand) { c.Name = "" }, field: "name"},
		{name: "bad email", modify: func(c *BookAppointmentCommand) { c.Email = "not-an-email" }, field: "email"},
		{name: "missing phone", modify: func(c *BookAppointmentCommand) { c.Phone = "" }, field: "phone"},
		{name: "bad date format", modify: func(c *BookAppointmentCommand) { c.Date = "13/06/2024" }, field: "date"},
		{name: "past date", modify: func(c *BookAppointmentCommand) { c.Date = "2024-06-09" }, field: "date"},
		{name: "unknown time label", modify: func(c *BookAppointmentCommand) { c.Time = "01:00 PM" }, field: "time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestBookingService(t)
			cmd := validBooking()
			tt.modify(&cmd)

			_, err := svc.Book(context.Background(), cmd)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}
