package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
)

// MemoryStore keeps all salon data in process memory. It backs tests and
// ad-hoc runs where a database file is unwanted.
type MemoryStore struct {
	mu           sync.RWMutex
	staff        map[int64]model.Staff
	availability map[int64][]model.StaffAvailability
	services     map[int64]model.Service
	customers    map[int64]model.Customer
	bookings     map[int64]model.Booking
	nextID       int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		staff:        make(map[int64]model.Staff),
		availability: make(map[int64][]model.StaffAvailability),
		services:     make(map[int64]model.Service),
		customers:    make(map[int64]model.Customer),
		bookings:     make(map[int64]model.Booking),
		nextID:       1000,
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) allocID() int64 {
	m.nextID++
	return m.nextID
}

func (m *MemoryStore) ListServices(ctx context.Context) ([]model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	services := make([]model.Service, 0, len(m.services))
	for _, svc := range m.services {
		services = append(services, svc)
	}
	return services, nil
}

func (m *MemoryStore) GetService(ctx context.Context, serviceType string, id int64) (model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	svc, ok := m.services[id]
	if !ok || svc.Type != serviceType {
		return model.Service{}, ErrNotFound
	}
	return svc, nil
}

func (m *MemoryStore) ServicesForStaff(ctx context.Context, serviceType string, staffID int64) ([]model.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matches := make([]model.Service, 0)
	for _, svc := range m.services {
		if svc.Type != serviceType {
			continue
		}
		for _, id := range svc.StaffIDs {
			if id == staffID {
				matches = append(matches, svc)
				break
			}
		}
	}
	return matches, nil
}

func (m *MemoryStore) GetStaff(ctx context.Context, id int64) (model.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st, ok := m.staff[id]
	if !ok {
		return model.Staff{}, ErrNotFound
	}
	return st, nil
}

func (m *MemoryStore) ListStaff(ctx context.Context) ([]model.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	staff := make([]model.Staff, 0, len(m.staff))
	for _, st := range m.staff {
		staff = append(staff, st)
	}
	return staff, nil
}

func (m *MemoryStore) FindStaffByName(ctx context.Context, name string) (model.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	name = strings.ToLower(strings.TrimSpace(name))
	for _, st := range m.staff {
		if strings.ToLower(st.FullName()) == name {
			return st, nil
		}
	}
	for _, st := range m.staff {
		if strings.Contains(strings.ToLower(st.FullName()), name) {
			return st, nil
		}
	}
	return model.Staff{}, ErrNotFound
}

func (m *MemoryStore) AvailabilityFor(ctx context.Context, staffID int64) ([]model.StaffAvailability, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]model.StaffAvailability(nil), m.availability[staffID]...), nil
}

func (m *MemoryStore) BookedTimes(ctx context.Context, staffID int64, date string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	times := make([]string, 0)
	for _, b := range m.bookings {
		if b.StaffID == staffID && b.Date == date &&
			(b.Status == model.StatusPending || b.Status == model.StatusConfirmed) {
			times = append(times, b.TimeOfDay)
		}
	}
	return times, nil
}

func (m *MemoryStore) UpsertCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			c.ID = id
			c.CreatedAt = existing.CreatedAt
			if c.Phone == "" {
				c.Phone = existing.Phone
			}
			m.customers[id] = c
			return c, nil
		}
	}

	c.ID = m.allocID()
	c.CreatedAt = time.Now()
	m.customers[c.ID] = c
	return c, nil
}

func (m *MemoryStore) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.customers[id]
	if !ok {
		return model.Customer{}, ErrNotFound
	}
	return c, nil
}

func (m *MemoryStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.bookings {
		if existing.StaffID == b.StaffID && existing.Date == b.Date &&
			existing.TimeOfDay == b.TimeOfDay &&
			(existing.Status == model.StatusPending || existing.Status == model.StatusConfirmed) {
			return ErrSlotTaken
		}
	}

	b.ID = m.allocID()
	b.CreatedAt = time.Now()
	m.bookings[b.ID] = *b
	return nil
}

func (m *MemoryStore) GetBooking(ctx context.Context, id int64) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return model.Booking{}, ErrNotFound
	}
	return b, nil
}

func (m *MemoryStore) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	m.bookings[id] = b
	return nil
}

func (m *MemoryStore) Seed(ctx context.Context, data SeedData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, st := range data.Staff {
		m.staff[st.ID] = model.Staff{
			ID:        st.ID,
			FirstName: st.FirstName,
			LastName:  st.LastName,
			Email:     st.Email,
			Phone:     st.Phone,
			CreatedAt: time.Now(),
		}
	}

	for _, a := range data.StaffAvailability {
		m.availability[a.StaffID] = append(m.availability[a.StaffID], model.StaffAvailability{
			StaffID:   a.StaffID,
			DayOfWeek: a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		})
	}

	for serviceType, services := range data.serviceGroups() {
		for _, svc := range services {
			m.services[svc.ID] = model.Service{
				ID:              svc.ID,
				Type:            serviceType,
				Name:            svc.Name,
				Price:           svc.Price,
				DurationMinutes: svc.DurationMinutes,
				StaffIDs:        append([]int64(nil), svc.StaffIDs...),
			}
		}
	}

	for _, c := range data.Customers {
		m.customers[c.ID] = model.Customer{
			ID:        c.ID,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
			Phone:     c.Phone,
			CreatedAt: time.Now(),
		}
	}

	for _, b := range data.Bookings {
		m.bookings[b.ID] = model.Booking{
			ID:          b.ID,
			Reference:   fmt.Sprintf("seed-%d", b.ID),
			CustomerID:  b.CustomerID,
			ServiceType: b.ServiceType,
			ServiceID:   b.ServiceID,
			StaffID:     b.StaffID,
			Date:        b.BookingDate,
			TimeOfDay:   b.BookingTime,
			Status:      b.Status,
		}
	}

	return nil
}
