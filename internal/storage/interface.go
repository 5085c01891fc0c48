package storage

import (
	"context"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
)

// Store is the persistence boundary for salon data. Chat transcripts are
// never stored; only staff, services, customers and bookings live here.
type Store interface {
	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, serviceType string, id int64) (model.Service, error)
	// ServicesForStaff returns the services of one type a staff member
	// performs, used when resolving chatbot booking links.
	ServicesForStaff(ctx context.Context, serviceType string, staffID int64) ([]model.Service, error)

	GetStaff(ctx context.Context, id int64) (model.Staff, error)
	ListStaff(ctx context.Context) ([]model.Staff, error)
	// FindStaffByName matches case-insensitively on "First Last".
	FindStaffByName(ctx context.Context, name string) (model.Staff, error)
	AvailabilityFor(ctx context.Context, staffID int64) ([]model.StaffAvailability, error)

	// BookedTimes returns "HH:MM" times held by pending or confirmed
	// bookings for a staff member on one date.
	BookedTimes(ctx context.Context, staffID int64, date string) ([]string, error)

	UpsertCustomer(ctx context.Context, c model.Customer) (model.Customer, error)
	GetCustomer(ctx context.Context, id int64) (model.Customer, error)

	// CreateBooking persists b and fills its ID. It fails with
	// ErrSlotTaken when a pending or confirmed booking already holds the
	// same staff, date and time.
	CreateBooking(ctx context.Context, b *model.Booking) error
	GetBooking(ctx context.Context, id int64) (model.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error

	Seed(ctx context.Context, data SeedData) error
	Close() error
}
