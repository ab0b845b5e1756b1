package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/datepicker"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/placement"
	"github.com/belphemur/jalaali-picker/internal/viewhelpers"
)

// maxWait bounds a single timeline advance.
const maxWait = time.Minute

var (
	defaultAnchor   = placement.Rect{Top: 100, Left: 100, Width: 240, Height: 40}
	defaultViewport = placement.Viewport{Width: 1280, Height: 800}

	errBadAction = errors.New("bad action payload")
)

// pickerSession is one server-side picker. Its host is virtual and its clock
// only moves when the client sends a "wait" action, so timing-dependent
// behaviour (listener delay, dismiss delay, guard window) is replayable.
type pickerSession struct {
	id    string
	ctrl  *datepicker.Controller
	host  *datepicker.VirtualHost
	clock *datepicker.FakeClock

	actMu sync.Mutex // serialises actions

	mu         sync.Mutex // guards changes
	changes    []string
	controlled bool
}

func (s *pickerSession) onChange(v string) {
	s.mu.Lock()
	s.changes = append(s.changes, v)
	controlled := s.controlled
	s.mu.Unlock()
	if controlled {
		// A controlled owner stores the value and renders it straight back.
		s.ctrl.SetValue(v)
	}
}

func (s *pickerSession) drainChanges() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.changes
	s.changes = nil
	if out == nil {
		out = []string{}
	}
	return out
}

// PickerHandler exposes headless picker sessions over HTTP
type PickerHandler struct {
	*BaseHandler
	ctx context.Context

	mu       sync.RWMutex
	sessions map[string]*pickerSession
}

// NewPickerHandler creates a new picker session handler. ctx is handed to
// every controller and carried into the signals they emit.
func NewPickerHandler(ctx context.Context, baseHandler *BaseHandler) *PickerHandler {
	return &PickerHandler{
		BaseHandler: baseHandler,
		ctx:         ctx,
		sessions:    make(map[string]*pickerSession),
	}
}

// RegisterRoutes registers picker session routes
func (h *PickerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/pickers", h.handleCreate)
	mux.HandleFunc("GET /api/pickers/{id}", h.handleGet)
	mux.HandleFunc("POST /api/pickers/{id}/actions", h.handleAction)
	mux.HandleFunc("DELETE /api/pickers/{id}", h.handleDelete)
}

// CreatePickerRequest is the body of POST /api/pickers. Unset fields take the configured defaults.
type CreatePickerRequest struct {
	Value      string              `json:"value"`
	MinYear    *int                `json:"min_year,omitempty"`
	MaxYear    *int                `json:"max_year,omitempty"`
	ShowTime   *bool               `json:"show_time,omitempty"`
	Disabled   bool                `json:"disabled"`
	Controlled bool                `json:"controlled"`
	Anchor     *placement.Rect     `json:"anchor,omitempty"`
	Viewport   *placement.Viewport `json:"viewport,omitempty"`
}

// PickerActionRequest is the body of POST /api/pickers/{id}/actions
type PickerActionRequest struct {
	Action   string              `json:"action"`
	Day      int                 `json:"day,omitempty"`
	Year     int                 `json:"year,omitempty"`
	Hour     int                 `json:"hour,omitempty"`
	Minute   int                 `json:"minute,omitempty"`
	Value    string              `json:"value,omitempty"`
	Target   string              `json:"target,omitempty"`
	Anchor   *placement.Rect     `json:"anchor,omitempty"`
	Viewport *placement.Viewport `json:"viewport,omitempty"`
	Millis   int                 `json:"ms,omitempty"`
}

// PickerResponse is the snapshot returned after every session call
type PickerResponse struct {
	ID      string                   `json:"id"`
	State   datepicker.State         `json:"state"`
	Grid    *viewhelpers.MonthGrid   `json:"grid,omitempty"`
	Years   []viewhelpers.YearOption `json:"years,omitempty"`
	Changes []string                 `json:"changes"`
}

// SessionCount returns the number of live sessions
func (h *PickerHandler) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Shutdown unmounts every session
func (h *PickerHandler) Shutdown() {
	h.mu.Lock()
	sessions := h.sessions
	h.sessions = make(map[string]*pickerSession)
	h.mu.Unlock()

	for _, s := range sessions {
		s.ctrl.Unmount()
	}
	h.logger.Info().Int("sessions", len(sessions)).Msg("Picker sessions unmounted")
}

func (h *PickerHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	handlerLogger := h.logger.With().Str("handler", "handleCreate").Logger()

	var req CreatePickerRequest
	if err := h.DecodeJSON(w, r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidPayload, err)
		return
	}

	id := uuid.NewString()
	opts, err := h.Config.PickerOptions(id)
	if err != nil {
		handlerLogger.Error().Err(err).Msg("Failed to build picker options")
		h.WriteError(w, http.StatusInternalServerError, ErrCodeSessionInitFailed, err)
		return
	}
	if req.MinYear != nil {
		opts.MinYear = *req.MinYear
	}
	if req.MaxYear != nil {
		opts.MaxYear = *req.MaxYear
	}
	if req.ShowTime != nil {
		opts.ShowTime = *req.ShowTime
	}
	opts.Disabled = opts.Disabled || req.Disabled

	anchor, viewport := defaultAnchor, defaultViewport
	if req.Anchor != nil {
		anchor = *req.Anchor
	}
	if req.Viewport != nil {
		viewport = *req.Viewport
	}

	s := &pickerSession{
		id:         id,
		host:       datepicker.NewVirtualHost(anchor, viewport),
		clock:      datepicker.NewFakeClock(h.Now()),
		controlled: req.Controlled,
	}
	ctrl, err := datepicker.New(h.ctx, opts, s.host, s.clock, s.onChange)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidPayload, err)
		return
	}
	s.ctrl = ctrl

	h.mu.Lock()
	if len(h.sessions) >= h.Config.App.MaxSessions {
		h.mu.Unlock()
		ctrl.Unmount()
		handlerLogger.Warn().Int("max_sessions", h.Config.App.MaxSessions).Msg("Session limit reached")
		h.WriteError(w, http.StatusTooManyRequests, ErrCodeTooManySessions, nil)
		return
	}
	h.sessions[id] = s
	h.mu.Unlock()

	ctrl.SetValue(req.Value)

	handlerLogger.Info().Str("picker_id", id).Bool("controlled", req.Controlled).Msg("Picker session created")
	w.Header().Set("Location", "/api/pickers/"+id)
	h.WriteJSON(w, http.StatusCreated, h.snapshot(s))
}

func (h *PickerHandler) lookup(w http.ResponseWriter, r *http.Request) (*pickerSession, bool) {
	id := r.PathValue("id")
	h.mu.RLock()
	s, ok := h.sessions[id]
	h.mu.RUnlock()
	if !ok {
		h.WriteError(w, http.StatusNotFound, ErrCodeSessionNotFound, fmt.Errorf("picker %q", id))
	}
	return s, ok
}

func (h *PickerHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.WriteJSON(w, http.StatusOK, h.snapshot(s))
}

func (h *PickerHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		h.WriteError(w, http.StatusNotFound, ErrCodeSessionNotFound, fmt.Errorf("picker %q", id))
		return
	}

	s.ctrl.Unmount()
	h.logger.Info().Str("picker_id", id).Msg("Picker session deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *PickerHandler) handleAction(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	handlerLogger := h.logger.With().Str("handler", "handleAction").Str("picker_id", s.id).Logger()

	var req PickerActionRequest
	if err := h.DecodeJSON(w, r, &req); err != nil {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidPayload, err)
		return
	}
	if !constants.IsValidAction(req.Action) {
		h.WriteError(w, http.StatusBadRequest, ErrCodeInvalidAction, fmt.Errorf("action %q", req.Action))
		return
	}

	handlerLogger.Debug().Str("action", req.Action).Msg("Applying picker action")
	s.actMu.Lock()
	defer s.actMu.Unlock()
	if err := h.apply(s, req); err != nil {
		status, code := actionErrorStatus(err)
		handlerLogger.Debug().Err(err).Str("code", code).Msg("Picker action rejected")
		h.WriteError(w, status, code, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, h.snapshot(s))
}

// apply performs one action. Actions on a session are serialised so the
// virtual timeline advances in request order.
func (h *PickerHandler) apply(s *pickerSession, req PickerActionRequest) error {
	ctrl := s.ctrl
	switch req.Action {
	case constants.ActionOpen:
		ctrl.Open()
	case constants.ActionClose:
		ctrl.Close()
	case constants.ActionNextMonth:
		ctrl.NextMonth()
	case constants.ActionPrevMonth:
		ctrl.PrevMonth()
	case constants.ActionNextYear:
		ctrl.NextYear()
	case constants.ActionPrevYear:
		ctrl.PrevYear()
	case constants.ActionToggleYearPick:
		ctrl.ToggleYearPicker()
	case constants.ActionEnterYearPick:
		ctrl.EnterYearPicker()
	case constants.ActionExitYearPick:
		ctrl.ExitYearPicker()
	case constants.ActionPickYear:
		ctrl.PickYear(req.Year)
	case constants.ActionSelectDay:
		return ctrl.SelectDay(req.Day)
	case constants.ActionSelectToday:
		return ctrl.SelectToday()
	case constants.ActionSetTime:
		return ctrl.SetTime(req.Hour, req.Minute)
	case constants.ActionSetValue:
		ctrl.SetValue(req.Value)
	case constants.ActionClick:
		target, err := parseTarget(req.Target)
		if err != nil {
			return err
		}
		s.host.Click(target)
	case constants.ActionResize:
		if req.Viewport == nil {
			return fmt.Errorf("%w: resize needs a viewport", errBadAction)
		}
		s.host.Resize(*req.Viewport)
	case constants.ActionScroll:
		if req.Anchor == nil {
			return fmt.Errorf("%w: scroll needs an anchor", errBadAction)
		}
		s.host.Scroll(*req.Anchor)
	case constants.ActionEscape:
		s.host.PressKey(datepicker.KeyEscape)
	case constants.ActionAdvanceTimeline:
		d := time.Duration(req.Millis) * time.Millisecond
		if d < 0 || d > maxWait {
			return fmt.Errorf("%w: ms must be between 0 and %d", errBadAction, maxWait.Milliseconds())
		}
		s.clock.Advance(d)
	}
	return nil
}

func parseTarget(raw string) (datepicker.Target, error) {
	switch raw {
	case "", "outside":
		return datepicker.TargetOutside, nil
	case "anchor":
		return datepicker.TargetAnchor, nil
	case "popup":
		return datepicker.TargetPopup, nil
	}
	return 0, fmt.Errorf("%w: unknown click target %q", errBadAction, raw)
}

// actionErrorStatus maps controller errors to HTTP status and error code
func actionErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, datepicker.ErrNotSelectable):
		return http.StatusConflict, ErrCodeNotSelectable
	case errors.Is(err, datepicker.ErrDayOutOfRange):
		return http.StatusUnprocessableEntity, ErrCodeDayOutOfRange
	case errors.Is(err, datepicker.ErrOutOfRange):
		return http.StatusUnprocessableEntity, ErrCodeOutOfRange
	case errors.Is(err, jalaali.ErrInvalidTime):
		return http.StatusUnprocessableEntity, ErrCodeInvalidTime
	case errors.Is(err, errBadAction):
		return http.StatusBadRequest, ErrCodeInvalidPayload
	}
	return http.StatusInternalServerError, ErrCodeUnknown
}

func (h *PickerHandler) snapshot(s *pickerSession) PickerResponse {
	state := s.ctrl.Snapshot()
	resp := PickerResponse{ID: s.id, State: state, Changes: s.drainChanges()}
	style := h.Config.Picker.DigitStyle

	switch state.Mode {
	case datepicker.ModeDayGrid:
		grid := viewhelpers.BuildMonthGrid(state.View.Year, state.View.Month, state.Selection.Date, state.Today, style)
		resp.Grid = &grid
	case datepicker.ModeYearPicker:
		resp.Years = viewhelpers.YearOptions(state.MinYear, state.MaxYear, state.View.Year, style)
	}
	return resp
}

