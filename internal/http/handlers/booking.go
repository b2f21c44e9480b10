package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/konanauto/garage-booking/internal/booking"
	"github.com/konanauto/garage-booking/internal/catalog"
	"github.com/konanauto/garage-booking/internal/restriction"
	"github.com/konanauto/garage-booking/internal/schedule"
	"github.com/konanauto/garage-booking/internal/titles"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// BookingHandler serves the reservation endpoints: the calendar and slot
// queries the booking form renders, and the booking submissions.
type BookingHandler struct {
	svc     *booking.Service
	catalog *catalog.Catalog
	logger  *logging.Logger
}

type BookingHandlerConfig struct {
	Service *booking.Service
	Catalog *catalog.Catalog
	Logger  *logging.Logger
}

func NewBookingHandler(cfg BookingHandlerConfig) *BookingHandler {
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &BookingHandler{svc: cfg.Service, catalog: cfg.Catalog, logger: cfg.Logger}
}

// HealthCheck reports liveness.
func (h *BookingHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type serviceInfo struct {
	Name        string `json:"name"`
	DurationMin int    `json:"duration_min,omitempty"`
	WholeDay    bool   `json:"whole_day,omitempty"`
}

// ListServices returns the bookable service menu.
func (h *BookingHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	defs := h.catalog.Services()
	out := make([]serviceInfo, 0, len(defs))
	for _, def := range defs {
		out = append(out, serviceInfo{
			Name:        def.Name,
			DurationMin: def.DurationMin,
			WholeDay:    def.WholeDay(),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

// Calendar returns the day statuses for one month.
// GET /api/calendar?service=オイル交換&year=2026&month=9
func (h *BookingHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	if service == "" {
		writeError(w, http.StatusBadRequest, "service is required")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2200 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	days, err := h.svc.MonthAvailability(r.Context(), service, year, time.Month(month))
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			writeError(w, http.StatusBadRequest, "unknown service")
			return
		}
		h.logger.Error("month availability failed", "error", err, "service", service)
		writeError(w, http.StatusInternalServerError, "availability lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// Slots returns the open start times for one day.
// GET /api/slots?service=オイル交換&date=2026-09-07
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	service := r.URL.Query().Get("service")
	if service == "" {
		writeError(w, http.StatusBadRequest, "service is required")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", r.URL.Query().Get("date"), schedule.Location)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	day, err := h.svc.DayAvailability(r.Context(), service, date)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownService) {
			writeError(w, http.StatusBadRequest, "unknown service")
			return
		}
		h.logger.Error("day availability failed", "error", err, "service", service)
		writeError(w, http.StatusInternalServerError, "availability lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, day)
}

type customerPayload struct {
	CompanyName        string `json:"company_name,omitempty"`
	FullName           string `json:"full_name"`
	Phone              string `json:"phone"`
	Address            string `json:"address,omitempty"`
	CarModel           string `json:"car_model,omitempty"`
	YearEra            string `json:"year_era,omitempty"`
	YearNumber         string `json:"year_number,omitempty"`
	RegistrationNumber string `json:"registration_number,omitempty"`
	Notes              string `json:"notes,omitempty"`
	Concerns           string `json:"concerns,omitempty"`
}

type bookingRequest struct {
	Service  string          `json:"service"`
	Date     string          `json:"date"`
	Time     string          `json:"time,omitempty"`
	Visit    string          `json:"visit,omitempty"`
	Customer customerPayload `json:"customer"`
}

func (h *BookingHandler) parseRequest(r *http.Request) (booking.Request, error) {
	var body bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return booking.Request{}, errors.New("invalid request body")
	}
	if body.Service == "" {
		return booking.Request{}, errors.New("service is required")
	}
	if body.Customer.FullName == "" && body.Customer.CompanyName == "" {
		return booking.Request{}, errors.New("customer name or company name is required")
	}
	if body.Customer.Phone == "" {
		return booking.Request{}, errors.New("customer phone is required")
	}
	date, err := time.ParseInLocation("2006-01-02", body.Date, schedule.Location)
	if err != nil {
		return booking.Request{}, errors.New("invalid date")
	}

	var at *schedule.Clock
	if body.Time != "" {
		c, err := schedule.ParseClock(body.Time)
		if err != nil {
			return booking.Request{}, errors.New("invalid time")
		}
		at = &c
	}

	visit := restriction.VisitInPerson
	if body.Visit == string(restriction.VisitPickup) {
		visit = restriction.VisitPickup
	}

	def, err := h.catalog.Lookup(body.Service)
	if err == nil && def.RequiresTimeSlot && at == nil {
		return booking.Request{}, errors.New("time is required for this service")
	}

	return booking.Request{
		Details: titles.Details{
			CompanyName:        body.Customer.CompanyName,
			FullName:           body.Customer.FullName,
			Phone:              body.Customer.Phone,
			Address:            body.Customer.Address,
			CarModel:           body.Customer.CarModel,
			YearEra:            body.Customer.YearEra,
			YearNumber:         body.Customer.YearNumber,
			RegistrationNumber: body.Customer.RegistrationNumber,
			Service:            body.Service,
			DurationMin:        def.DurationMin,
			Notes:              body.Customer.Notes,
			Concerns:           body.Customer.Concerns,
		},
		Date:  date,
		At:    at,
		Visit: visit,
	}, nil
}

func (h *BookingHandler) book(w http.ResponseWriter, r *http.Request, role restriction.Role) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Role = role

	d, err := h.svc.Book(r.Context(), req)
	if err != nil {
		h.logger.Error("booking failed", "error", err, "service", req.Details.Service)
		writeError(w, http.StatusBadGateway, "booking could not be completed")
		return
	}
	if !d.Accepted {
		writeJSON(w, http.StatusConflict, d)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

// CreateBooking accepts a submission from the public form.
// POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, restriction.RolePublic)
}

// CreateStaffBooking accepts a submission from the staff form. Staff
// requests skip the restriction rules but not the availability checks.
// POST /admin/bookings
func (h *BookingHandler) CreateStaffBooking(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, restriction.RolePrivileged)
}
