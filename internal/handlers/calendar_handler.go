package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/viewhelpers"
)

// CalendarHandler serves the stateless calendar API: month grids and conversions
type CalendarHandler struct {
	*BaseHandler
}

// NewCalendarHandler creates a new calendar API handler
func NewCalendarHandler(baseHandler *BaseHandler) *CalendarHandler {
	return &CalendarHandler{BaseHandler: baseHandler}
}

// RegisterRoutes registers the calendar API routes
func (h *CalendarHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/calendar", h.handleCalendar)
	mux.HandleFunc("GET /api/convert", h.handleConvert)
}

// CalendarResponse is the month grid API payload
type CalendarResponse struct {
	Grid        viewhelpers.MonthGrid `json:"grid"`
	Today       jalaali.Date          `json:"today"`
	DaysInMonth int                   `json:"days_in_month"`
	IsLeapYear  bool                  `json:"is_leap_year"`
}

// ConvertResponse describes one day in both calendars
type ConvertResponse struct {
	Jalaali   string `json:"jalaali"`
	Gregorian string `json:"gregorian"`
	Weekday   string `json:"weekday"`
	Display   string `json:"display"`
	IsLeap    bool   `json:"is_leap_year"`
}

// handleCalendar returns the grid of ?year=&month= (today's month by default)
func (h *CalendarHandler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleCalendar").Logger()
	q := r.URL.Query()

	style, err := h.DigitStyle(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidDigits, err)
		return
	}

	today := h.Today()
	year, month := today.Year, today.Month

	if raw := q.Get("year"); raw != "" {
		year, err = strconv.Atoi(raw)
		// The upper bound leaves room for the grid's month arithmetic.
		if err != nil || year < jalaali.MinSupportedYear || year >= jalaali.MaxSupportedYear {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidYear, fmt.Errorf("year %q", raw))
			return
		}
	}
	if raw := q.Get("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidMonth, fmt.Errorf("month %q", raw))
			return
		}
	}

	var selected *jalaali.Date
	if raw := q.Get("selected"); raw != "" {
		v, err := calfmt.ParseValue(raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidDate, err)
			return
		}
		selected = &v.Date
	}

	handlerLogger.Debug().Int("year", year).Int("month", month).Msg("Building month grid")
	h.WriteJSON(w, http.StatusOK, CalendarResponse{
		Grid:        viewhelpers.BuildMonthGrid(year, month, selected, today, style),
		Today:       today,
		DaysInMonth: jalaali.DaysInMonth(year, month),
		IsLeapYear:  jalaali.IsLeapYear(year),
	})
}

// handleConvert converts ?jalaali=YYYY/MM/DD or ?gregorian=YYYY-MM-DD
func (h *CalendarHandler) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jRaw, gRaw := q.Get("jalaali"), q.Get("gregorian")

	style, err := h.DigitStyle(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidDigits, err)
		return
	}

	var d jalaali.Date
	switch {
	case jRaw != "" && gRaw != "":
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidPayload, fmt.Errorf("pass either jalaali or gregorian, not both"))
		return
	case jRaw != "":
		v, err := calfmt.ParseValue(jRaw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidDate, err)
			return
		}
		d = v.Date
	case gRaw != "":
		t, err := time.Parse("2006-01-02", gRaw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidDate, err)
			return
		}
		if t.Year() < jalaali.MinGregorianYear || t.Year() > jalaali.MaxGregorianYear {
			h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidYear, fmt.Errorf("gregorian year %d", t.Year()))
			return
		}
		d = jalaali.FromTime(t)
	default:
		h.WriteError(w, http.StatusBadRequest, ErrCodeMissingParameter, fmt.Errorf("jalaali or gregorian is required"))
		return
	}

	h.WriteJSON(w, http.StatusOK, ConvertResponse{
		Jalaali:   calfmt.FormatMachine(d),
		Gregorian: jalaali.ToGregorian(d).String(),
		Weekday:   d.Weekday().String(),
		Display:   calfmt.FormatDisplay(d, nil, false, style),
		IsLeap:    jalaali.IsLeapYear(d.Year),
	})
}
