package model

import "encoding/json"

// ChatRequest is the browser-facing relay payload. Message is kept as a
// raw value so a non-string message can be rejected explicitly instead of
// failing with a bind error that names the wrong field.
type ChatRequest struct {
	Message json.RawMessage `json:"message"`
	UserID  string          `json:"userId"`
}

// UpstreamRequest is the fixed wire format of the hosted chatbot service.
type UpstreamRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// BookingRequest creates a booking for a customer.
type BookingRequest struct {
	CustomerFirstName string `json:"customer_first_name"`
	CustomerLastName  string `json:"customer_last_name"`
	CustomerEmail     string `json:"customer_email"`
	CustomerPhone     string `json:"customer_phone"`
	ServiceType       string `json:"service_type"`
	ServiceID         int64  `json:"service_id"`
	StaffID           int64  `json:"staff_id"`
	BookingDate       string `json:"booking_date"`
	BookingTime       string `json:"booking_time"`
}

// BookingActionRequest mutates an existing booking.
type BookingActionRequest struct {
	Action string `json:"action"`
}
