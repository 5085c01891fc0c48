package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
)

// SeedData mirrors the JSON fixture layout used to bootstrap a fresh
// database: staff and their weekly windows, the four service groups,
// and optional customers/bookings.
type SeedData struct {
	Staff             []SeedStaff        `json:"staff"`
	StaffAvailability []SeedAvailability `json:"staff_availability"`
	Haircut           []SeedService      `json:"haircut"`
	BeardCut          []SeedService      `json:"beardcut"`
	Facial            []SeedService      `json:"facial"`
	Spa               []SeedService      `json:"spa"`
	Customers         []SeedCustomer     `json:"customers"`
	Bookings          []SeedBooking      `json:"bookings"`
}

type SeedStaff struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type SeedAvailability struct {
	StaffID   int64  `json:"staff_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SeedService struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	StaffIDs        []int64 `json:"staff_ids"`
}

type SeedCustomer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type SeedBooking struct {
	ID          int64  `json:"id"`
	CustomerID  int64  `json:"customer_id"`
	ServiceType string `json:"service_type"`
	ServiceID   int64  `json:"service_id"`
	StaffID     int64  `json:"staff_id"`
	BookingDate string `json:"booking_date"`
	BookingTime string `json:"booking_time"`
	Status      string `json:"status"`
}

// serviceGroups pairs each fixture list with its catalog type.
func (d SeedData) serviceGroups() map[string][]SeedService {
	return map[string][]SeedService{
		model.ServiceHaircut: d.Haircut,
		model.ServiceBeard:   d.BeardCut,
		model.ServiceFacial:  d.Facial,
		model.ServiceSpa:     d.Spa,
	}
}

// LoadSeedFile reads a seed fixture from disk.
func LoadSeedFile(path string) (SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedData{}, err
	}
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return SeedData{}, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return data, nil
}

func (s *SQLiteStore) Seed(ctx context.Context, data SeedData) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, st := range data.Staff {
		if _, err := tx.ExecContext(ctx, `
            INSERT OR REPLACE INTO staff (id, first_name, last_name, email, phone)
            VALUES (?, ?, ?, ?, ?)`,
			st.ID, st.FirstName, st.LastName, st.Email, st.Phone); err != nil {
			return fmt.Errorf("seed staff %d: %w", st.ID, err)
		}
	}

	for _, a := range data.StaffAvailability {
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO staff_availability (staff_id, day_of_week, start_time, end_time)
            VALUES (?, ?, ?, ?)
            ON CONFLICT(staff_id, day_of_week) DO UPDATE SET
                start_time = excluded.start_time,
                end_time = excluded.end_time`,
			a.StaffID, a.DayOfWeek, a.StartTime, a.EndTime); err != nil {
			return fmt.Errorf("seed availability for staff %d: %w", a.StaffID, err)
		}
	}

	for serviceType, services := range data.serviceGroups() {
		for _, svc := range services {
			if _, err := tx.ExecContext(ctx, `
                INSERT OR REPLACE INTO services (id, service_type, name, price, duration_minutes)
                VALUES (?, ?, ?, ?, ?)`,
				svc.ID, serviceType, svc.Name, svc.Price, svc.DurationMinutes); err != nil {
				return fmt.Errorf("seed %s service %d: %w", serviceType, svc.ID, err)
			}
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM service_staff WHERE service_id = ?`, svc.ID); err != nil {
				return err
			}
			for _, staffID := range svc.StaffIDs {
				if _, err := tx.ExecContext(ctx, `
                    INSERT INTO service_staff (service_id, staff_id) VALUES (?, ?)`,
					svc.ID, staffID); err != nil {
					return fmt.Errorf("seed %s service %d staff %d: %w", serviceType, svc.ID, staffID, err)
				}
			}
		}
	}

	for _, c := range data.Customers {
		if _, err := tx.ExecContext(ctx, `
            INSERT OR REPLACE INTO customers (id, first_name, last_name, email, phone)
            VALUES (?, ?, ?, ?, ?)`,
			c.ID, c.FirstName, c.LastName, c.Email, c.Phone); err != nil {
			return fmt.Errorf("seed customer %d: %w", c.ID, err)
		}
	}

	for _, b := range data.Bookings {
		if _, err := tx.ExecContext(ctx, `
            INSERT OR REPLACE INTO bookings (id, reference, customer_id, service_type,
                service_id, staff_id, booking_date, booking_time, status)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, fmt.Sprintf("seed-%d", b.ID), b.CustomerID, b.ServiceType,
			b.ServiceID, b.StaffID, b.BookingDate, b.BookingTime, b.Status); err != nil {
			return fmt.Errorf("seed booking %d: %w", b.ID, err)
		}
	}

	return tx.Commit()
}
