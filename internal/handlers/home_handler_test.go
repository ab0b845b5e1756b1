package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belphemur/jalaali-picker/internal/config"
	"github.com/belphemur/jalaali-picker/internal/datepicker"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
)

func serveHome(t *testing.T, handler *HomeHandler, query string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHomeHandler_RendersTodayMonth(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, nil))

	w := serveHome(t, handler, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "فروردین ۱۴۰۳")
	assert.Contains(t, body, `<td class="day today">`)
	assert.Contains(t, body, "انتخاب تاریخ", "placeholder shown without a value")
	assert.Contains(t, body, `/static/css/picker.css?v=test-version`)
	assert.NotContains(t, body, "پاک کردن", "nothing to clear")
}

func TestHomeHandler_RendersSelection(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, nil))

	w := serveHome(t, handler, "?value="+url.QueryEscape("1390/06/15"))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "۱۵ شهریور ۱۳۹۰")
	assert.Contains(t, body, "شهریور ۱۳۹۰", "view follows the selection")
	assert.Contains(t, body, `<td class="day selected">`)
	assert.Contains(t, body, "پاک کردن")
}

func TestHomeHandler_InvalidParameters(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, nil))

	tests := []struct {
		name  string
		query string
		code  string
	}{
		{name: "unparsable value", query: "?value=tomorrow", code: ErrCodeInvalidDate},
		{name: "year above range", query: "?year=1500", code: ErrCodeInvalidYear},
		{name: "year not a number", query: "?year=abc", code: ErrCodeInvalidYear},
		{name: "month out of range", query: "?month=13", code: ErrCodeInvalidMonth},
		{name: "explicit error code", query: "?error=" + ErrCodeMissingParameter, code: ErrCodeMissingParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveHome(t, handler, tt.query)

			require.Equal(t, http.StatusOK, w.Code, "errors are shown inline")
			assert.Contains(t, w.Body.String(), GetErrorMessage(tt.code))
			assert.Contains(t, w.Body.String(), `class="picker-grid"`, "a grid is still rendered")
		})
	}
}

func TestHomeHandler_NavigationLinksStopAtRange(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, nil))

	w := serveHome(t, handler, "?year=1300&month=1")

	body := w.Body.String()
	assert.NotContains(t, body, `aria-label="previous month"`)
	assert.NotContains(t, body, `aria-label="previous year"`)
	assert.Contains(t, body, `aria-label="next month"`)
	assert.Contains(t, body, `aria-label="next year"`)
}

func TestHomeHandler_YearNavigationDisabled(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, func(cfg *config.Config) {
		cfg.Picker.EnableYearNavigation = false
		cfg.Picker.EnableYearSelection = false
	}))

	body := serveHome(t, handler, "").Body.String()

	assert.NotContains(t, body, `aria-label="next year"`)
	assert.NotContains(t, body, `class="picker-years"`)
	assert.Contains(t, body, `aria-label="next month"`)
}

func TestHomeHandler_TodayLinkHiddenOutsideRange(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, func(cfg *config.Config) {
		cfg.Picker.MaxYear = 1400
	}))

	body := serveHome(t, handler, "").Body.String()

	assert.NotContains(t, body, "امروز")
	assert.Contains(t, body, "اسفند ۱۴۰۰", "view clamped to the last month of the range")
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "/?month=2&value=1403%2F01%2F05&year=1403",
		pageURL(datepicker.ViewState{Year: 1403, Month: 2}, "1403/01/05"))
	assert.Equal(t, "/?month=12&year=1402",
		pageURL(datepicker.ViewState{Year: 1402, Month: 12}, ""))

	var data HomePageData
	assert.Equal(t, "/?month=7&value=1403%2F07%2F01&year=1403", data.DayURL(jalaali.MustNew(1403, 7, 1)))
}

func TestHomeHandler_resolveView(t *testing.T) {
	handler := NewHomeHandler(setupTestBaseHandler(t, nil))
	today := jalaali.MustNew(1403, 1, 1)
	logger := zerolog.Nop()

	tests := []struct {
		name     string
		query    url.Values
		selected *jalaali.Date
		want     datepicker.ViewState
		code     string
	}{
		{name: "today", query: url.Values{}, want: datepicker.ViewState{Year: 1403, Month: 1}},
		{name: "selection", query: url.Values{}, selected: &jalaali.Date{Year: 1399, Month: 12, Day: 30}, want: datepicker.ViewState{Year: 1399, Month: 12}},
		{name: "selection below range", query: url.Values{}, selected: &jalaali.Date{Year: 1250, Month: 5, Day: 1}, want: datepicker.ViewState{Year: 1300, Month: 1}},
		{name: "selection above range", query: url.Values{}, selected: &jalaali.Date{Year: 1450, Month: 5, Day: 1}, want: datepicker.ViewState{Year: 1410, Month: 12}},
		{name: "explicit view", query: url.Values{"year": {"1380"}, "month": {"4"}}, want: datepicker.ViewState{Year: 1380, Month: 4}},
		{name: "explicit year keeps month", query: url.Values{"year": {"1380"}}, want: datepicker.ViewState{Year: 1380, Month: 1}},
		{name: "bad year", query: url.Values{"year": {"1299"}}, want: datepicker.ViewState{Year: 1403, Month: 1}, code: ErrCodeInvalidYear},
		{name: "bad month", query: url.Values{"month": {"0"}}, want: datepicker.ViewState{Year: 1403, Month: 1}, code: ErrCodeInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, code := handler.resolveView(tt.query, tt.selected, today, logger)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.code, code)
		})
	}
}
