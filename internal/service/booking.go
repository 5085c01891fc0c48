package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/podderSoykot/Saloon-chatbot/internal/config"
	"github.com/podderSoykot/Saloon-chatbot/internal/model"
	"github.com/podderSoykot/Saloon-chatbot/internal/storage"
	"github.com/podderSoykot/Saloon-chatbot/pkg/logger"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// ValidationError marks caller mistakes so handlers can answer 400
// without inspecting message text.
type ValidationError struct {
	msg string
}

func (e ValidationError) Error() string { return e.msg }

func invalidf(format string, args ...interface{}) error {
	return ValidationError{msg: fmt.Sprintf(format, args...)}
}

// BookingService owns slot generation and the booking workflow.
type BookingService struct {
	store storage.Store
	hours config.BusinessConfig

	// now is swapped out by tests to pin "today".
	now func() time.Time
}

func NewBookingService(store storage.Store, hours config.BusinessConfig) *BookingService {
	return &BookingService{
		store: store,
		hours: hours,
		now:   time.Now,
	}
}

func (s *BookingService) businessHours() model.BusinessHours {
	return model.BusinessHours{
		StartTime:    s.hours.OpenTime,
		EndTime:      s.hours.CloseTime,
		ClosedDays:   s.hours.ClosedDays,
		SlotDuration: s.hours.SlotDuration,
		BufferTime:   s.hours.BufferTime,
	}
}

func (s *BookingService) isClosed(day int) bool {
	for _, d := range s.hours.ClosedDays {
		if d == day {
			return true
		}
	}
	return false
}

// Catalog lists every service grouped by type with assigned staff.
func (s *BookingService) Catalog(ctx context.Context) (model.ServiceCatalog, error) {
	services, err := s.store.ListServices(ctx)
	if err != nil {
		return model.ServiceCatalog{}, err
	}

	grouped := make(map[string][]model.ServiceInfo)
	for _, t := range model.ServiceTypes {
		grouped[t] = []model.ServiceInfo{}
	}

	for _, svc := range services {
		info := model.ServiceInfo{
			ID:              svc.ID,
			Name:            svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
			Staff:           []model.StaffInfo{},
		}
		if info.DurationMinutes <= 0 {
			info.DurationMinutes = s.hours.SlotDuration
		}
		for _, staffID := range svc.StaffIDs {
			st, err := s.store.GetStaff(ctx, staffID)
			if err != nil {
				continue
			}
			days, err := s.availableDays(ctx, staffID)
			if err != nil {
				return model.ServiceCatalog{}, err
			}
			info.Staff = append(info.Staff, model.StaffInfo{
				ID:            st.ID,
				Name:          st.FullName(),
				AvailableDays: days,
			})
		}
		grouped[svc.Type] = append(grouped[svc.Type], info)
	}

	return model.ServiceCatalog{
		Services:      grouped,
		BusinessHours: s.businessHours(),
	}, nil
}

func (s *BookingService) availableDays(ctx context.Context, staffID int64) ([]int, error) {
	windows, err := s.store.AvailabilityFor(ctx, staffID)
	if err != nil {
		return nil, err
	}
	days := make([]int, 0, len(windows))
	for _, w := range windows {
		days = append(days, w.DayOfWeek)
	}
	sort.Ints(days)
	return days, nil
}

// Availability reports per-staff slots for one service on one date.
// staffID zero means every assigned staff member.
func (s *BookingService) Availability(ctx context.Context, serviceType string, serviceID int64, dateStr string, staffID int64) (model.DayAvailability, error) {
	date, err := time.ParseInLocation(dateLayout, dateStr, s.now().Location())
	if err != nil {
		return model.DayAvailability{}, invalidf("invalid date format, use YYYY-MM-DD")
	}

	today := s.today()
	if date.Before(today) {
		return model.DayAvailability{}, invalidf("cannot book appointments in the past")
	}
	if s.isClosed(model.Weekday(date)) {
		return model.DayAvailability{}, invalidf("we are closed on this day")
	}
	if !model.IsServiceType(serviceType) {
		return model.DayAvailability{}, invalidf("invalid service_type")
	}

	svc, err := s.store.GetService(ctx, serviceType, serviceID)
	if err != nil {
		return model.DayAvailability{}, err
	}

	staffIDs := svc.StaffIDs
	if staffID != 0 {
		found := false
		for _, id := range staffIDs {
			if id == staffID {
				found = true
				break
			}
		}
		if !found {
			return model.DayAvailability{}, storage.ErrNotFound
		}
		staffIDs = []int64{staffID}
	}

	out := model.DayAvailability{
		ServiceID:      svc.ID,
		ServiceName:    svc.Name,
		ServiceType:    serviceType,
		Date:           dateStr,
		DayOfWeek:      date.Weekday().String(),
		AvailableSlots: make(map[string][]string),
		BookedSlots:    make(map[string][]string),
		BusinessHours:  s.businessHours(),
	}

	for _, id := range staffIDs {
		st, err := s.store.GetStaff(ctx, id)
		if err != nil {
			return model.DayAvailability{}, err
		}
		available, booked, err := s.slotsForStaff(ctx, svc, id, date)
		if err != nil {
			return model.DayAvailability{}, err
		}
		out.AvailableSlots[st.FullName()] = available
		out.BookedSlots[st.FullName()] = booked
		out.TotalAvailable += len(available)
	}

	return out, nil
}

// WeeklyAvailability covers seven days starting at startDate, or at the
// Monday of the current week when startDate is empty.
func (s *BookingService) WeeklyAvailability(ctx context.Context, serviceType string, serviceID int64, startDate string) (model.WeekAvailability, error) {
	if !model.IsServiceType(serviceType) {
		return model.WeekAvailability{}, invalidf("invalid service_type")
	}

	svc, err := s.store.GetService(ctx, serviceType, serviceID)
	if err != nil {
		return model.WeekAvailability{}, err
	}

	var start time.Time
	if startDate != "" {
		start, err = time.ParseInLocation(dateLayout, startDate, s.now().Location())
		if err != nil {
			return model.WeekAvailability{}, invalidf("invalid start_date format, use YYYY-MM-DD")
		}
	} else {
		today := s.today()
		start = today.AddDate(0, 0, -model.Weekday(today))
	}

	out := model.WeekAvailability{
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		ServiceType:   serviceType,
		WeekStart:     start.Format(dateLayout),
		WeekEnd:       start.AddDate(0, 0, 6).Format(dateLayout),
		Days:          make(map[string]model.WeekDay),
		BusinessHours: s.businessHours(),
	}

	for i := 0; i < 7; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format(dateLayout)
		day := model.WeekDay{
			Date:           key,
			DayName:        date.Weekday().String(),
			AvailableSlots: make(map[string][]string),
			BookedSlots:    make(map[string][]string),
		}

		if s.isClosed(model.Weekday(date)) {
			day.IsClosed = true
			out.Days[key] = day
			continue
		}

		for _, staffID := range svc.StaffIDs {
			st, err := s.store.GetStaff(ctx, staffID)
			if err != nil {
				return model.WeekAvailability{}, err
			}
			available, booked, err := s.slotsForStaff(ctx, svc, staffID, date)
			if err != nil {
				return model.WeekAvailability{}, err
			}
			day.AvailableSlots[st.FullName()] = available
			day.BookedSlots[st.FullName()] = booked
			day.TotalAvailable += len(available)
		}

		out.Days[key] = day
		out.TotalAvailable += day.TotalAvailable
	}

	return out, nil
}

// slotsForStaff generates the staff member's slots on date: the weekly
// window stepped by service duration plus buffer, minus past times for
// today and times held by live bookings.
func (s *BookingService) slotsForStaff(ctx context.Context, svc model.Service, staffID int64, date time.Time) (available, booked []string, err error) {
	windows, err := s.store.AvailabilityFor(ctx, staffID)
	if err != nil {
		return nil, nil, err
	}

	var window *model.StaffAvailability
	weekday := model.Weekday(date)
	for i := range windows {
		if windows[i].DayOfWeek == weekday {
			window = &windows[i]
			break
		}
	}
	if window == nil {
		return []string{}, []string{}, nil
	}

	start, err := time.Parse(timeLayout, window.StartTime)
	if err != nil {
		return nil, nil, fmt.Errorf("bad start_time for staff %d: %w", staffID, err)
	}
	end, err := time.Parse(timeLayout, window.EndTime)
	if err != nil {
		return nil, nil, fmt.Errorf("bad end_time for staff %d: %w", staffID, err)
	}

	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = s.hours.SlotDuration
	}
	step := time.Duration(duration+s.hours.BufferTime) * time.Minute

	var cutoff string
	if date.Equal(s.today()) {
		cutoff = s.now().Format(timeLayout)
	}

	bookedTimes, err := s.store.BookedTimes(ctx, staffID, date.Format(dateLayout))
	if err != nil {
		return nil, nil, err
	}
	taken := make(map[string]bool, len(bookedTimes))
	for _, t := range bookedTimes {
		taken[t] = true
	}

	available = []string{}
	for cur := start; !cur.Add(time.Duration(duration) * time.Minute).After(end); cur = cur.Add(step) {
		slot := cur.Format(timeLayout)
		if cutoff != "" && slot <= cutoff {
			continue
		}
		if !taken[slot] {
			available = append(available, slot)
		}
	}

	booked = append([]string{}, bookedTimes...)
	sort.Strings(booked)
	return available, booked, nil
}

func (s *BookingService) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// PrepareBooking resolves a chatbot booking link (staff referenced by
// name) into concrete booking details plus the customer form fields.
func (s *BookingService) PrepareBooking(ctx context.Context, serviceType, staffName, timeStr, dateStr string) (model.BookingForm, error) {
	serviceType = strings.ToLower(strings.TrimSpace(serviceType))
	if serviceType == "" || staffName == "" || timeStr == "" || dateStr == "" {
		return model.BookingForm{}, invalidf("service_type, staff_name, time and date are required")
	}
	if !model.IsServiceType(serviceType) {
		return model.BookingForm{}, invalidf("invalid service type %q", serviceType)
	}
	if _, err := time.Parse(dateLayout, dateStr); err != nil {
		return model.BookingForm{}, invalidf("invalid date format, use YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, timeStr); err != nil {
		return model.BookingForm{}, invalidf("invalid time format, use HH:MM")
	}

	staff, err := s.store.FindStaffByName(ctx, staffName)
	if err != nil {
		return model.BookingForm{}, err
	}

	services, err := s.store.ServicesForStaff(ctx, serviceType, staff.ID)
	if err != nil {
		return model.BookingForm{}, err
	}
	if len(services) == 0 {
		return model.BookingForm{}, storage.ErrNotFound
	}
	svc := services[0]

	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = s.hours.SlotDuration
	}

	return model.BookingForm{
		BookingDetails: model.BookingDetails{
			ServiceType:     serviceType,
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			StaffID:         staff.ID,
			StaffName:       staff.FullName(),
			Date:            dateStr,
			Time:            timeStr,
			Price:           svc.Price,
			DurationMinutes: duration,
		},
		FormFields: []model.FormField{
			{Name: "customer_first_name", Type: "text", Required: true, Label: "First Name"},
			{Name: "customer_last_name", Type: "text", Required: true, Label: "Last Name"},
			{Name: "customer_email", Type: "email", Required: true, Label: "Email"},
			{Name: "customer_phone", Type: "tel", Required: false, Label: "Phone (Optional)"},
		},
	}, nil
}

// CreateBooking validates the request, upserts the customer and stores a
// confirmed booking. A held slot fails with storage.ErrSlotTaken.
func (s *BookingService) CreateBooking(ctx context.Context, req model.BookingRequest) (model.BookingConfirmation, error) {
	var missing []string
	for field, value := range map[string]string{
		"customer_first_name": req.CustomerFirstName,
		"customer_last_name":  req.CustomerLastName,
		"customer_email":      req.CustomerEmail,
		"service_type":        req.ServiceType,
		"booking_date":        req.BookingDate,
		"booking_time":        req.BookingTime,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}
	if req.StaffID == 0 {
		missing = append(missing, "staff_id")
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return model.BookingConfirmation{}, invalidf("missing required fields: %s", strings.Join(missing, ", "))
	}

	at := strings.Index(req.CustomerEmail, "@")
	if at <= 0 || !strings.Contains(req.CustomerEmail[at:], ".") {
		return model.BookingConfirmation{}, invalidf("invalid email format")
	}

	date, err := time.ParseInLocation(dateLayout, req.BookingDate, s.now().Location())
	if err != nil {
		return model.BookingConfirmation{}, invalidf("invalid booking_date format, use YYYY-MM-DD")
	}
	bookTime, err := time.Parse(timeLayout, req.BookingTime)
	if err != nil {
		return model.BookingConfirmation{}, invalidf("invalid booking_time format, use HH:MM")
	}
	if date.Before(s.today()) {
		return model.BookingConfirmation{}, invalidf("cannot book appointments in the past")
	}
	if s.isClosed(model.Weekday(date)) {
		return model.BookingConfirmation{}, invalidf("we are closed on this day")
	}
	if err := s.checkBusinessHours(bookTime); err != nil {
		return model.BookingConfirmation{}, err
	}

	serviceType := strings.ToLower(req.ServiceType)
	if !model.IsServiceType(serviceType) {
		return model.BookingConfirmation{}, invalidf("invalid service type %q", req.ServiceType)
	}

	staff, err := s.store.GetStaff(ctx, req.StaffID)
	if err != nil {
		return model.BookingConfirmation{}, err
	}

	svc, err := s.resolveService(ctx, serviceType, req.ServiceID, staff.ID)
	if err != nil {
		return model.BookingConfirmation{}, err
	}

	customer, err := s.store.UpsertCustomer(ctx, model.Customer{
		FirstName: req.CustomerFirstName,
		LastName:  req.CustomerLastName,
		Email:     req.CustomerEmail,
		Phone:     req.CustomerPhone,
	})
	if err != nil {
		return model.BookingConfirmation{}, err
	}

	booking := model.Booking{
		Reference:   uuid.NewString(),
		CustomerID:  customer.ID,
		ServiceType: serviceType,
		ServiceID:   svc.ID,
		StaffID:     staff.ID,
		Date:        req.BookingDate,
		TimeOfDay:   bookTime.Format(timeLayout),
		Status:      model.StatusConfirmed,
	}
	if err := s.store.CreateBooking(ctx, &booking); err != nil {
		return model.BookingConfirmation{}, err
	}

	logger.Infof("booking %d confirmed: %s with %s on %s %s",
		booking.ID, svc.Name, staff.FullName(), booking.Date, booking.TimeOfDay)

	duration := svc.DurationMinutes
	if duration <= 0 {
		duration = s.hours.SlotDuration
	}

	return model.BookingConfirmation{
		Message: "Booking confirmed successfully!",
		BookingDetails: model.BookingDetails{
			BookingID:       booking.ID,
			Reference:       booking.Reference,
			ServiceType:     serviceType,
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			StaffID:         staff.ID,
			StaffName:       staff.FullName(),
			CustomerName:    customer.FirstName + " " + customer.LastName,
			CustomerEmail:   customer.Email,
			Date:            booking.Date,
			Time:            booking.TimeOfDay,
			Price:           svc.Price,
			DurationMinutes: duration,
			Status:          booking.Status,
		},
	}, nil
}

// resolveService prefers the requested service ID but falls back to any
// service of the type the staff member performs, matching how chatbot
// links omit the ID.
func (s *BookingService) resolveService(ctx context.Context, serviceType string, serviceID, staffID int64) (model.Service, error) {
	services, err := s.store.ServicesForStaff(ctx, serviceType, staffID)
	if err != nil {
		return model.Service{}, err
	}
	if len(services) == 0 {
		return model.Service{}, invalidf("service not available with selected staff member")
	}
	if serviceID != 0 {
		for _, svc := range services {
			if svc.ID == serviceID {
				return svc, nil
			}
		}
	}
	return services[0], nil
}

func (s *BookingService) checkBusinessHours(bookTime time.Time) error {
	open, err := time.Parse(timeLayout, s.hours.OpenTime)
	if err != nil {
		return err
	}
	closeAt, err := time.Parse(timeLayout, s.hours.CloseTime)
	if err != nil {
		return err
	}
	if bookTime.Before(open) || bookTime.After(closeAt) {
		return invalidf("booking time must be between %s and %s", s.hours.OpenTime, s.hours.CloseTime)
	}
	return nil
}

// Booking returns the full details of one booking.
func (s *BookingService) Booking(ctx context.Context, id int64) (model.BookingDetails, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return model.BookingDetails{}, err
	}

	customer, err := s.store.GetCustomer(ctx, booking.CustomerID)
	if err != nil {
		return model.BookingDetails{}, err
	}
	staff, err := s.store.GetStaff(ctx, booking.StaffID)
	if err != nil {
		return model.BookingDetails{}, err
	}

	details := model.BookingDetails{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		ServiceType:   booking.ServiceType,
		ServiceID:     booking.ServiceID,
		ServiceName:   "Unknown Service",
		StaffID:       staff.ID,
		StaffName:     staff.FullName(),
		CustomerName:  customer.FirstName + " " + customer.LastName,
		CustomerEmail: customer.Email,
		Date:          booking.Date,
		Time:          booking.TimeOfDay,
		Status:        booking.Status,
	}

	if svc, err := s.store.GetService(ctx, booking.ServiceType, booking.ServiceID); err == nil {
		details.ServiceName = svc.Name
		details.Price = svc.Price
		details.DurationMinutes = svc.DurationMinutes
	} else if !errors.Is(err, storage.ErrNotFound) {
		return model.BookingDetails{}, err
	}

	return details, nil
}

// Cancel flips a booking to cancelled, freeing its slot.
func (s *BookingService) Cancel(ctx context.Context, id int64) error {
	if err := s.store.UpdateBookingStatus(ctx, id, model.StatusCancelled); err != nil {
		return err
	}
	logger.Infof("booking %d cancelled", id)
	return nil
}
