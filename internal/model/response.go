package model

// ChatReply is returned to the browser on a successful relay round trip.
type ChatReply struct {
	Reply string `json:"reply"`
}

// UpstreamResponse is what the hosted chatbot service answers with.
type UpstreamResponse struct {
	Bot string `json:"bot"`
}

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StaffInfo describes a staff member inside the service catalog.
type StaffInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AvailableDays []int  `json:"available_days"`
}

// ServiceInfo is one catalog entry.
type ServiceInfo struct {
	ID              int64       `json:"id"`
	Name            string      `json:"name"`
	Price           float64     `json:"price"`
	DurationMinutes int         `json:"duration_minutes"`
	Staff           []StaffInfo `json:"staff"`
}

// BusinessHours echoes the configured opening hours in API responses.
type BusinessHours struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	ClosedDays   []int  `json:"closed_days"`
	SlotDuration int    `json:"slot_duration"`
	BufferTime   int    `json:"buffer_time"`
}

// ServiceCatalog groups services by type.
type ServiceCatalog struct {
	Services      map[string][]ServiceInfo `json:"services"`
	BusinessHours BusinessHours            `json:"business_hours"`
}

// DayAvailability holds per-staff slots for one date.
type DayAvailability struct {
	ServiceID      int64               `json:"service_id"`
	ServiceName    string              `json:"service_name"`
	ServiceType    string              `json:"service_type"`
	Date           string              `json:"date"`
	DayOfWeek      string              `json:"day_of_week"`
	AvailableSlots map[string][]string `json:"available_slots"`
	BookedSlots    map[string][]string `json:"booked_slots"`
	TotalAvailable int                 `json:"total_available_slots"`
	BusinessHours  BusinessHours       `json:"business_hours"`
}

// WeekDay is one entry of a weekly availability response.
type WeekDay struct {
	Date           string              `json:"date"`
	DayName        string              `json:"day_name"`
	IsClosed       bool                `json:"is_closed"`
	AvailableSlots map[string][]string `json:"available_slots"`
	BookedSlots    map[string][]string `json:"booked_slots"`
	TotalAvailable int                 `json:"total_available"`
}

// WeekAvailability covers seven consecutive days for one service.
type WeekAvailability struct {
	ServiceID      int64              `json:"service_id"`
	ServiceName    string             `json:"service_name"`
	ServiceType    string             `json:"service_type"`
	WeekStart      string             `json:"week_start"`
	WeekEnd        string             `json:"week_end"`
	Days           map[string]WeekDay `json:"weekly_slots"`
	TotalAvailable int                `json:"total_week_availability"`
	BusinessHours  BusinessHours      `json:"business_hours"`
}

// FormField describes one input of the booking form shown after a
// chatbot booking link is resolved.
type FormField struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Label    string `json:"label"`
}

// BookingDetails summarises a prepared or created booking.
type BookingDetails struct {
	BookingID       int64   `json:"booking_id,omitempty"`
	Reference       string  `json:"reference,omitempty"`
	ServiceType     string  `json:"service_type"`
	ServiceID       int64   `json:"service_id"`
	ServiceName     string  `json:"service_name"`
	StaffID         int64   `json:"staff_id"`
	StaffName       string  `json:"staff_name"`
	CustomerName    string  `json:"customer_name,omitempty"`
	CustomerEmail   string  `json:"customer_email,omitempty"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	Status          string  `json:"status,omitempty"`
}

// BookingForm is the response to a chatbot booking link.
type BookingForm struct {
	BookingDetails BookingDetails `json:"booking_details"`
	FormFields     []FormField    `json:"form_fields"`
}

// BookingConfirmation wraps a created booking.
type BookingConfirmation struct {
	Message        string         `json:"message"`
	BookingDetails BookingDetails `json:"booking_details"`
}
