package model

import "time"

// Service types offered by the salon.
const (
	ServiceHaircut = "haircut"
	ServiceBeard   = "beard"
	ServiceFacial  = "facial"
	ServiceSpa     = "spa"
)

// ServiceTypes lists the valid catalog groups in display order.
var ServiceTypes = []string{ServiceHaircut, ServiceBeard, ServiceFacial, ServiceSpa}

// IsServiceType reports whether t names a known service group.
func IsServiceType(t string) bool {
	for _, st := range ServiceTypes {
		if st == t {
			return true
		}
	}
	return false
}

// Booking statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Staff struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName is the display and chatbot-link identity of a staff member.
func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StaffAvailability is one weekly working window. DayOfWeek follows
// time-table convention: 0=Monday .. 6=Sunday. Times are "HH:MM".
type StaffAvailability struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staff_id"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Service struct {
	ID              int64   `json:"id"`
	Type            string  `json:"service_type"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	StaffIDs        []int64 `json:"staff_ids"`
}

type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking ties a customer to a staffed service slot. Date is "2006-01-02",
// TimeOfDay is "HH:MM".
type Booking struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	CustomerID  int64     `json:"customer_id"`
	ServiceType string    `json:"service_type"`
	ServiceID   int64     `json:"service_id"`
	StaffID     int64     `json:"staff_id"`
	Date        string    `json:"booking_date"`
	TimeOfDay   string    `json:"booking_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Weekday converts time.Weekday to the 0=Monday convention used by
// StaffAvailability and the closed-days config.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
