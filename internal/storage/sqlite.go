package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS staff (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT,
    phone TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS staff_availability (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    staff_id INTEGER NOT NULL,
    day_of_week INTEGER NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    UNIQUE (staff_id, day_of_week),
    FOREIGN KEY (staff_id) REFERENCES staff(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS services (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    service_type TEXT NOT NULL,
    name TEXT NOT NULL,
    price REAL NOT NULL,
    duration_minutes INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS service_staff (
    service_id INTEGER NOT NULL,
    staff_id INTEGER NOT NULL,
    PRIMARY KEY (service_id, staff_id),
    FOREIGN KEY (service_id) REFERENCES services(id) ON DELETE CASCADE,
    FOREIGN KEY (staff_id) REFERENCES staff(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS customers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    first_name TEXT NOT NULL,
    last_name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS bookings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    reference TEXT NOT NULL,
    customer_id INTEGER NOT NULL,
    service_type TEXT NOT NULL,
    service_id INTEGER NOT NULL,
    staff_id INTEGER NOT NULL,
    booking_date TEXT NOT NULL,
    booking_time TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'pending',
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (customer_id) REFERENCES customers(id) ON DELETE CASCADE,
    FOREIGN KEY (staff_id) REFERENCES staff(id)
);

CREATE INDEX IF NOT EXISTS idx_bookings_staff_date
    ON bookings(staff_id, booking_date);`

// SQLiteStore persists salon data in a single sqlite database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ListServices(ctx context.Context) ([]model.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, service_type, name, price, duration_minutes
        FROM services ORDER BY service_type, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]model.Service, 0)
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.Type, &svc.Name, &svc.Price, &svc.DurationMinutes); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range services {
		if services[i].StaffIDs, err = s.staffIDsFor(ctx, services[i].ID); err != nil {
			return nil, err
		}
	}
	return services, nil
}

func (s *SQLiteStore) GetService(ctx context.Context, serviceType string, id int64) (model.Service, error) {
	var svc model.Service
	err := s.db.QueryRowContext(ctx, `
        SELECT id, service_type, name, price, duration_minutes
        FROM services WHERE id = ? AND service_type = ?`, id, serviceType).
		Scan(&svc.ID, &svc.Type, &svc.Name, &svc.Price, &svc.DurationMinutes)
	if err == sql.ErrNoRows {
		return model.Service{}, ErrNotFound
	}
	if err != nil {
		return model.Service{}, err
	}
	svc.StaffIDs, err = s.staffIDsFor(ctx, svc.ID)
	return svc, err
}

func (s *SQLiteStore) ServicesForStaff(ctx context.Context, serviceType string, staffID int64) ([]model.Service, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT sv.id, sv.service_type, sv.name, sv.price, sv.duration_minutes
        FROM services sv
        JOIN service_staff ss ON ss.service_id = sv.id
        WHERE sv.service_type = ? AND ss.staff_id = ?
        ORDER BY sv.id`, serviceType, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]model.Service, 0)
	for rows.Next() {
		var svc model.Service
		if err := rows.Scan(&svc.ID, &svc.Type, &svc.Name, &svc.Price, &svc.DurationMinutes); err != nil {
			return nil, err
		}
		svc.StaffIDs = []int64{staffID}
		services = append(services, svc)
	}
	return services, rows.Err()
}

func (s *SQLiteStore) staffIDsFor(ctx context.Context, serviceID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT staff_id FROM service_staff WHERE service_id = ? ORDER BY staff_id`, serviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) GetStaff(ctx context.Context, id int64) (model.Staff, error) {
	var st model.Staff
	err := s.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), created_at
        FROM staff WHERE id = ?`, id).
		Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &st.Phone, &st.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Staff{}, ErrNotFound
	}
	return st, err
}

func (s *SQLiteStore) ListStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), created_at
        FROM staff ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]model.Staff, 0)
	for rows.Next() {
		var st model.Staff
		if err := rows.Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &st.Phone, &st.CreatedAt); err != nil {
			return nil, err
		}
		staff = append(staff, st)
	}
	return staff, rows.Err()
}

func (s *SQLiteStore) FindStaffByName(ctx context.Context, name string) (model.Staff, error) {
	name = strings.TrimSpace(name)
	first, last := name, ""
	if i := strings.Index(name, " "); i > 0 {
		first, last = name[:i], strings.TrimSpace(name[i+1:])
	}

	var st model.Staff
	err := s.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, COALESCE(email, ''), COALESCE(phone, ''), created_at
        FROM staff
        WHERE (first_name = ? COLLATE NOCASE AND last_name = ? COLLATE NOCASE)
           OR (? = '' AND first_name LIKE '%' || ? || '%' COLLATE NOCASE)
        LIMIT 1`, first, last, last, first).
		Scan(&st.ID, &st.FirstName, &st.LastName, &st.Email, &st.Phone, &st.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Staff{}, ErrNotFound
	}
	return st, err
}

func (s *SQLiteStore) AvailabilityFor(ctx context.Context, staffID int64) ([]model.StaffAvailability, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, staff_id, day_of_week, start_time, end_time
        FROM staff_availability WHERE staff_id = ? ORDER BY day_of_week`, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	avail := make([]model.StaffAvailability, 0)
	for rows.Next() {
		var a model.StaffAvailability
		if err := rows.Scan(&a.ID, &a.StaffID, &a.DayOfWeek, &a.StartTime, &a.EndTime); err != nil {
			return nil, err
		}
		avail = append(avail, a)
	}
	return avail, rows.Err()
}

func (s *SQLiteStore) BookedTimes(ctx context.Context, staffID int64, date string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT booking_time FROM bookings
        WHERE staff_id = ? AND booking_date = ? AND status IN ('pending', 'confirmed')
        ORDER BY booking_time`, staffID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (s *SQLiteStore) UpsertCustomer(ctx context.Context, c model.Customer) (model.Customer, error) {
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO customers (first_name, last_name, email, phone)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(email) DO UPDATE SET
            first_name = excluded.first_name,
            last_name = excluded.last_name,
            phone = CASE WHEN excluded.phone != '' THEN excluded.phone ELSE customers.phone END
        RETURNING id, created_at`,
		c.FirstName, c.LastName, c.Email, c.Phone).
		Scan(&c.ID, &c.CreatedAt)
	return c, err
}

func (s *SQLiteStore) GetCustomer(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	err := s.db.QueryRowContext(ctx, `
        SELECT id, first_name, last_name, email, COALESCE(phone, ''), created_at
        FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrNotFound
	}
	return c, err
}

func (s *SQLiteStore) CreateBooking(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx, `
        SELECT COUNT(1) FROM bookings
        WHERE staff_id = ? AND booking_date = ? AND booking_time = ?
          AND status IN ('pending', 'confirmed')`,
		b.StaffID, b.Date, b.TimeOfDay).Scan(&taken)
	if err != nil {
		return err
	}
	if taken > 0 {
		return ErrSlotTaken
	}

	err = tx.QueryRowContext(ctx, `
        INSERT INTO bookings (reference, customer_id, service_type, service_id, staff_id,
                              booking_date, booking_time, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING id, created_at`,
		b.Reference, b.CustomerID, b.ServiceType, b.ServiceID, b.StaffID,
		b.Date, b.TimeOfDay, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetBooking(ctx context.Context, id int64) (model.Booking, error) {
	var b model.Booking
	err := s.db.QueryRowContext(ctx, `
        SELECT id, reference, customer_id, service_type, service_id, staff_id,
               booking_date, booking_time, status, created_at
        FROM bookings WHERE id = ?`, id).
		Scan(&b.ID, &b.Reference, &b.CustomerID, &b.ServiceType, &b.ServiceID,
			&b.StaffID, &b.Date, &b.TimeOfDay, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (s *SQLiteStore) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
