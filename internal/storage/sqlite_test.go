package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLite(filepath.Join(t.TempDir(), "salon.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Seed(context.Background(), SeedData{
		Staff: []SeedStaff{
			{ID: 1, FirstName: "Maya", LastName: "Rahman", Email: "maya@example.com"},
			{ID: 2, FirstName: "Arif", LastName: "Chowdhury"},
		},
		StaffAvailability: []SeedAvailability{
			{StaffID: 1, DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
			{StaffID: 1, DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		},
		Haircut: []SeedService{
			{ID: 1, Name: "Classic Haircut", Price: 25, DurationMinutes: 30, StaffIDs: []int64{1, 2}},
		},
		Spa: []SeedService{
			{ID: 4, Name: "Full SPA Session", Price: 60, DurationMinutes: 60, StaffIDs: []int64{2}},
		},
	}))
	return store
}

func TestSeedRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	services, err := store.ListServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)

	svc, err := store.GetService(ctx, model.ServiceHaircut, 1)
	require.NoError(t, err)
	assert.Equal(t, "Classic Haircut", svc.Name)
	assert.Equal(t, []int64{1, 2}, svc.StaffIDs)

	avail, err := store.AvailabilityFor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, avail, 2)
	assert.Equal(t, "09:00", avail[0].StartTime)
}

func TestGetServiceWrongType(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetService(context.Background(), model.ServiceSpa, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindStaffByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	st, err := store.FindStaffByName(ctx, "maya rahman")
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.ID)

	st, err = store.FindStaffByName(ctx, "Arif")
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.ID)

	_, err = store.FindStaffByName(ctx, "Nobody Here")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestServicesForStaff(t *testing.T) {
	store := newTestStore(t)

	services, err := store.ServicesForStaff(context.Background(), model.ServiceHaircut, 1)
	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Classic Haircut", services[0].Name)

	services, err = store.ServicesForStaff(context.Background(), model.ServiceHaircut, 99)
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestUpsertCustomerByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.UpsertCustomer(ctx, model.Customer{
		FirstName: "Rita", LastName: "Begum", Email: "rita@example.com", Phone: "555-1",
	})
	require.NoError(t, err)

	second, err := store.UpsertCustomer(ctx, model.Customer{
		FirstName: "Rita", LastName: "Begum-Khan", Email: "rita@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	got, err := store.GetCustomer(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Begum-Khan", got.LastName)
	// Empty phone on update keeps the stored value.
	assert.Equal(t, "555-1", got.Phone)
}

func TestBookingConflictAndCancel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	customer, err := store.UpsertCustomer(ctx, model.Customer{
		FirstName: "Rita", LastName: "Begum", Email: "rita@example.com",
	})
	require.NoError(t, err)

	booking := model.Booking{
		Reference: "ref-1", CustomerID: customer.ID,
		ServiceType: model.ServiceHaircut, ServiceID: 1, StaffID: 1,
		Date: "2030-06-03", TimeOfDay: "10:30", Status: model.StatusConfirmed,
	}
	require.NoError(t, store.CreateBooking(ctx, &booking))
	assert.NotZero(t, booking.ID)

	dup := booking
	dup.Reference = "ref-2"
	require.ErrorIs(t, store.CreateBooking(ctx, &dup), ErrSlotTaken)

	times, err := store.BookedTimes(ctx, 1, "2030-06-03")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30"}, times)

	require.NoError(t, store.UpdateBookingStatus(ctx, booking.ID, model.StatusCancelled))

	times, err = store.BookedTimes(ctx, 1, "2030-06-03")
	require.NoError(t, err)
	assert.Empty(t, times)

	// The freed slot accepts a new booking.
	dup.Reference = "ref-3"
	require.NoError(t, store.CreateBooking(ctx, &dup))

	got, err := store.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, got.Status)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.UpdateBookingStatus(context.Background(), 999, model.StatusCancelled)
	require.ErrorIs(t, err, ErrNotFound)
}
