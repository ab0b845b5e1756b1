package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/datepicker"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/viewhelpers"
)

// HomeHandler renders a server-side picker: the month grid is plain HTML and
// every interaction is a link carrying the view and the selected value.
type HomeHandler struct {
	*BaseHandler
}

// NewHomeHandler creates a new home page handler
func NewHomeHandler(baseHandler *BaseHandler) *HomeHandler {
	return &HomeHandler{BaseHandler: baseHandler}
}

// RegisterRoutes registers home page related routes
func (h *HomeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleHome)
}

// HomePageData contains data for the home page template
type HomePageData struct {
	BasePageData
	ErrorMessage  string
	Value         string
	Display       string
	Placeholder   string
	Grid          viewhelpers.MonthGrid
	Years         []viewhelpers.YearOption
	YearSelection bool
	ViewMonth     int
	PrevMonthURL  string
	NextMonthURL  string
	PrevYearURL   string
	NextYearURL   string
	TodayURL      string
	ClearURL      string
}

// DayURL is the link that selects d.
func (d HomePageData) DayURL(date jalaali.Date) string {
	return pageURL(datepicker.ViewState{Year: date.Year, Month: date.Month}, calfmt.FormatMachine(date))
}

func pageURL(view datepicker.ViewState, value string) string {
	q := url.Values{}
	q.Set("year", strconv.Itoa(view.Year))
	q.Set("month", strconv.Itoa(view.Month))
	if value != "" {
		q.Set("value", value)
	}
	return "/?" + q.Encode()
}

// handleHome shows the picker for the view and value in the query string
func (h *HomeHandler) handleHome(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleHome").Logger()
	handlerLogger.Debug().Str("method", r.Method).Str("query", r.URL.RawQuery).Msg("Handling home page request")

	q := r.URL.Query()
	picker := h.Config.Picker
	style := picker.DigitStyle
	today := h.Today()

	data := HomePageData{
		BasePageData:  h.NewBasePageData(r),
		Placeholder:   picker.Placeholder,
		YearSelection: picker.EnableYearSelection,
	}
	if code := q.Get("error"); code != "" {
		data.ErrorMessage = GetErrorMessage(code)
	}

	var selected *jalaali.Date
	if raw := q.Get("value"); raw != "" {
		v, err := calfmt.ParseValue(raw)
		if err != nil {
			handlerLogger.Debug().Err(err).Str("value", raw).Msg("Ignoring invalid value")
			data.ErrorMessage = GetErrorMessage(ErrCodeInvalidDate)
		} else {
			d := v.Date
			selected = &d
			data.Value = calfmt.FormatMachine(d)
			data.Display = calfmt.FormatDisplay(d, nil, false, style)
		}
	}

	view, code := h.resolveView(q, selected, today, handlerLogger)
	if code != "" {
		data.ErrorMessage = GetErrorMessage(code)
	}

	data.Grid = viewhelpers.BuildMonthGrid(view.Year, view.Month, selected, today, style)
	data.Years = viewhelpers.YearOptions(picker.MinYear, picker.MaxYear, view.Year, style)
	data.ViewMonth = view.Month
	inRange := func(v datepicker.ViewState) bool { return v.Year >= picker.MinYear && v.Year <= picker.MaxYear }

	if prev := view.Prev(); inRange(prev) {
		data.PrevMonthURL = pageURL(prev, data.Value)
	}
	if next := view.Next(); inRange(next) {
		data.NextMonthURL = pageURL(next, data.Value)
	}
	if picker.EnableYearNavigation {
		if prev := (datepicker.ViewState{Year: view.Year - 1, Month: view.Month}); inRange(prev) {
			data.PrevYearURL = pageURL(prev, data.Value)
		}
		if next := (datepicker.ViewState{Year: view.Year + 1, Month: view.Month}); inRange(next) {
			data.NextYearURL = pageURL(next, data.Value)
		}
	}
	if today.Year >= picker.MinYear && today.Year <= picker.MaxYear {
		data.TodayURL = data.DayURL(today)
	}
	data.ClearURL = pageURL(view, "")

	h.RenderTemplate(w, "home.html", data)
}

// resolveView picks the month to show: explicit year/month parameters, else the
// selection's month, else today's, clamped into the configured range.
func (h *HomeHandler) resolveView(q url.Values, selected *jalaali.Date, today jalaali.Date, logger zerolog.Logger) (datepicker.ViewState, string) {
	picker := h.Config.Picker

	base := today
	if selected != nil {
		base = *selected
	}
	view := datepicker.ViewState{Year: base.Year, Month: base.Month}
	switch {
	case view.Year < picker.MinYear:
		view = datepicker.ViewState{Year: picker.MinYear, Month: 1}
	case view.Year > picker.MaxYear:
		view = datepicker.ViewState{Year: picker.MaxYear, Month: 12}
	}

	if raw := q.Get("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil || year < picker.MinYear || year > picker.MaxYear {
			logger.Debug().Str("year", raw).Msg("Rejecting year parameter")
			return view, ErrCodeInvalidYear
		}
		view.Year = year
	}
	if raw := q.Get("month"); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil || month < 1 || month > 12 {
			logger.Debug().Str("month", raw).Msg("Rejecting month parameter")
			return view, ErrCodeInvalidMonth
		}
		view.Month = month
	}
	return view, ""
}
