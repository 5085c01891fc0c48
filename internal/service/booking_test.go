package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podderSoykot/Saloon-chatbot/internal/config"
	"github.com/podderSoykot/Saloon-chatbot/internal/model"
	"github.com/podderSoykot/Saloon-chatbot/internal/storage"
)

// fixedNow pins the clock to Wednesday 2026-03-04 12:00 local time.
var fixedNow = time.Date(2026, 3, 4, 12, 0, 0, 0, time.Local)

func testHours() config.BusinessConfig {
	return config.BusinessConfig{
		OpenTime:     "09:00",
		CloseTime:    "18:00",
		ClosedDays:   []int{6}, // Sunday
		SlotDuration: 30,
		BufferTime:   15,
	}
}

func seedFixture() storage.SeedData {
	return storage.SeedData{
		Staff: []storage.SeedStaff{
			{ID: 1, FirstName: "Maya", LastName: "Rahman"},
			{ID: 2, FirstName: "Arif", LastName: "Chowdhury"},
		},
		StaffAvailability: []storage.SeedAvailability{
			// Maya works Monday through Friday.
			{StaffID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
			{StaffID: 1, DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			{StaffID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
			{StaffID: 1, DayOfWeek: 3, StartTime: "09:00", EndTime: "17:00"},
			{StaffID: 1, DayOfWeek: 4, StartTime: "09:00", EndTime: "17:00"},
		},
		Haircut: []storage.SeedService{
			{ID: 1, Name: "Classic Haircut", Price: 25, DurationMinutes: 30, StaffIDs: []int64{1}},
		},
		Spa: []storage.SeedService{
			{ID: 4, Name: "Full SPA Session", Price: 60, DurationMinutes: 60, StaffIDs: []int64{2}},
		},
	}
}

func newBookingService(t *testing.T) (*BookingService, storage.Store) {
	t.Helper()
	store := storage.NewMemory()
	require.NoError(t, store.Seed(context.Background(), seedFixture()))

	svc := NewBookingService(store, testHours())
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func TestAvailabilitySlotGeneration(t *testing.T) {
	svc, _ := newBookingService(t)

	// Thursday: full window 09:00-17:00, 30min service + 15min buffer.
	day, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-05", 0)
	require.NoError(t, err)

	want := []string{
		"09:00", "09:45", "10:30", "11:15", "12:00", "12:45",
		"13:30", "14:15", "15:00", "15:45", "16:30",
	}
	assert.Equal(t, want, day.AvailableSlots["Maya Rahman"])
	assert.Equal(t, len(want), day.TotalAvailable)
	assert.Empty(t, day.BookedSlots["Maya Rahman"])
}

func TestAvailabilityExcludesBookedSlots(t *testing.T) {
	svc, store := newBookingService(t)

	booking := model.Booking{
		Reference: "r1", CustomerID: 1, ServiceType: "haircut", ServiceID: 1,
		StaffID: 1, Date: "2026-03-05", TimeOfDay: "09:45", Status: model.StatusConfirmed,
	}
	require.NoError(t, store.CreateBooking(context.Background(), &booking))

	day, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-05", 0)
	require.NoError(t, err)

	assert.NotContains(t, day.AvailableSlots["Maya Rahman"], "09:45")
	assert.Contains(t, day.BookedSlots["Maya Rahman"], "09:45")
}

func TestAvailabilityDropsPastSlotsToday(t *testing.T) {
	svc, _ := newBookingService(t)

	// Today at noon: only afternoon slots remain.
	day, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-04", 0)
	require.NoError(t, err)

	want := []string{"12:45", "13:30", "14:15", "15:00", "15:45", "16:30"}
	assert.Equal(t, want, day.AvailableSlots["Maya Rahman"])
}

func TestAvailabilityRejectsPastDate(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-03", 0)
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAvailabilityRejectsClosedDay(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-08", 0) // Sunday
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAvailabilityUnknownService(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Availability(context.Background(), "haircut", 99, "2026-03-05", 0)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAvailabilityStaffNotAssigned(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-05", 2)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestWeeklyAvailabilityMarksClosedDays(t *testing.T) {
	svc, _ := newBookingService(t)

	week, err := svc.WeeklyAvailability(context.Background(), "haircut", 1, "")
	require.NoError(t, err)

	// Defaults to Monday of the current week.
	assert.Equal(t, "2026-03-02", week.WeekStart)
	assert.Equal(t, "2026-03-08", week.WeekEnd)
	require.Len(t, week.Days, 7)

	sunday := week.Days["2026-03-08"]
	assert.True(t, sunday.IsClosed)
	assert.Zero(t, sunday.TotalAvailable)

	thursday := week.Days["2026-03-05"]
	assert.False(t, thursday.IsClosed)
	assert.NotZero(t, thursday.TotalAvailable)
}

func validBookingRequest() model.BookingRequest {
	return model.BookingRequest{
		CustomerFirstName: "Rita",
		CustomerLastName:  "Begum",
		CustomerEmail:     "rita@example.com",
		ServiceType:       "haircut",
		ServiceID:         1,
		StaffID:           1,
		BookingDate:       "2026-03-05",
		BookingTime:       "10:30",
	}
}

func TestCreateBookingHappyPath(t *testing.T) {
	svc, store := newBookingService(t)

	conf, err := svc.CreateBooking(context.Background(), validBookingRequest())
	require.NoError(t, err)

	assert.Equal(t, model.StatusConfirmed, conf.BookingDetails.Status)
	assert.Equal(t, "Maya Rahman", conf.BookingDetails.StaffName)
	assert.Equal(t, "Rita Begum", conf.BookingDetails.CustomerName)
	assert.NotEmpty(t, conf.BookingDetails.Reference)

	stored, err := store.GetBooking(context.Background(), conf.BookingDetails.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "10:30", stored.TimeOfDay)
}

func TestCreateBookingRejectsTakenSlot(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.CreateBooking(context.Background(), validBookingRequest())
	require.NoError(t, err)

	req := validBookingRequest()
	req.CustomerEmail = "other@example.com"
	_, err = svc.CreateBooking(context.Background(), req)
	require.ErrorIs(t, err, storage.ErrSlotTaken)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _ := newBookingService(t)

	cases := []struct {
		name   string
		mutate func(*model.BookingRequest)
	}{
		{"missing first name", func(r *model.BookingRequest) { r.CustomerFirstName = "" }},
		{"missing email", func(r *model.BookingRequest) { r.CustomerEmail = "" }},
		{"bad email", func(r *model.BookingRequest) { r.CustomerEmail = "not-an-email" }},
		{"missing staff", func(r *model.BookingRequest) { r.StaffID = 0 }},
		{"bad date", func(r *model.BookingRequest) { r.BookingDate = "05/03/2026" }},
		{"bad time", func(r *model.BookingRequest) { r.BookingTime = "half past ten" }},
		{"past date", func(r *model.BookingRequest) { r.BookingDate = "2026-03-01" }},
		{"outside hours", func(r *model.BookingRequest) { r.BookingTime = "20:00" }},
		{"unknown service type", func(r *model.BookingRequest) { r.ServiceType = "piercing" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			tc.mutate(&req)
			_, err := svc.CreateBooking(context.Background(), req)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCancelFreesSlot(t *testing.T) {
	svc, _ := newBookingService(t)

	conf, err := svc.CreateBooking(context.Background(), validBookingRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), conf.BookingDetails.BookingID))

	day, err := svc.Availability(context.Background(), "haircut", 1, "2026-03-05", 0)
	require.NoError(t, err)
	assert.Contains(t, day.AvailableSlots["Maya Rahman"], "10:30")

	details, err := svc.Booking(context.Background(), conf.BookingDetails.BookingID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, details.Status)
}

func TestPrepareBookingResolvesStaffByName(t *testing.T) {
	svc, _ := newBookingService(t)

	form, err := svc.PrepareBooking(context.Background(), "haircut", "maya rahman", "10:30", "2026-03-05")
	require.NoError(t, err)

	assert.Equal(t, int64(1), form.BookingDetails.StaffID)
	assert.Equal(t, "Classic Haircut", form.BookingDetails.ServiceName)
	require.Len(t, form.FormFields, 4)
	assert.Equal(t, "customer_first_name", form.FormFields[0].Name)
}

func TestPrepareBookingUnknownStaff(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.PrepareBooking(context.Background(), "haircut", "Nobody Here", "10:30", "2026-03-05")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPrepareBookingMissingParams(t *testing.T) {
	svc, _ := newBookingService(t)

	_, err := svc.PrepareBooking(context.Background(), "haircut", "", "10:30", "2026-03-05")
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
}
