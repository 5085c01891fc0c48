package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/podderSoykot/Saloon-chatbot/internal/model"
	"github.com/podderSoykot/Saloon-chatbot/internal/service"
	"github.com/podderSoykot/Saloon-chatbot/internal/storage"
	"github.com/podderSoykot/Saloon-chatbot/pkg/logger"
)

// BookingHandler exposes the salon catalog, availability and booking
// endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// respondServiceError maps service/storage failures to HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var verr service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, storage.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "slot already booked, please choose another"})
	default:
		logger.Errorf("booking request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// Services handles GET /api/services.
func (h *BookingHandler) Services(c *gin.Context) {
	catalog, err := h.bookings.Catalog(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// Availability handles GET /api/availability.
func (h *BookingHandler) Availability(c *gin.Context) {
	serviceType := c.Query("service_type")
	serviceIDStr := c.Query("service_id")
	date := c.Query("date")

	if serviceType == "" || serviceIDStr == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_type, service_id and date are required"})
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id must be a number"})
		return
	}

	var staffID int64
	if v := c.Query("staff_id"); v != "" {
		if staffID, err = strconv.ParseInt(v, 10, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "staff_id must be a number"})
			return
		}
	}

	day, err := h.bookings.Availability(c.Request.Context(), serviceType, serviceID, date, staffID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// WeeklyAvailability handles GET /api/weekly-availability.
func (h *BookingHandler) WeeklyAvailability(c *gin.Context) {
	serviceType := c.Query("service_type")
	serviceIDStr := c.Query("service_id")

	if serviceType == "" || serviceIDStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_type and service_id are required"})
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id must be a number"})
		return
	}

	week, err := h.bookings.WeeklyAvailability(c.Request.Context(), serviceType, serviceID, c.Query("start_date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// PrepareBooking handles GET /api/book, resolving chatbot booking links.
func (h *BookingHandler) PrepareBooking(c *gin.Context) {
	form, err := h.bookings.PrepareBooking(c.Request.Context(),
		c.Query("service_type"), c.Query("staff_name"), c.Query("time"), c.Query("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

// CreateBooking handles POST /api/book.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	confirmation, err := h.bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, confirmation)
}

// Booking handles GET /api/bookings/:id.
func (h *BookingHandler) Booking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	details, err := h.bookings.Booking(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking_details": details})
}

// UpdateBooking handles PATCH /api/bookings/:id. Cancellation is the
// only supported action.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req model.BookingActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Action != "cancel" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid action",
			"available_actions": []string{"cancel"},
		})
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Booking cancelled successfully",
		"booking_id": id,
		"status":     model.StatusCancelled,
	})
}
