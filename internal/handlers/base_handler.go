package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/belphemur/jalaali-picker/internal/calfmt"
	"github.com/belphemur/jalaali-picker/internal/config"
	"github.com/belphemur/jalaali-picker/internal/constants"
	"github.com/belphemur/jalaali-picker/internal/jalaali"
	"github.com/belphemur/jalaali-picker/internal/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

// BaseHandler contains common handler functionality
type BaseHandler struct {
	tmpl     *template.Template
	Config   *config.Config
	Location *time.Location
	// Now is the wall clock; tests replace it.
	Now        func() time.Time
	logger     zerolog.Logger
	cssVersion string
}

// NewBaseHandler creates a common base handler with shared components.
// cssVersion is appended to the stylesheet URL for cache busting.
func NewBaseHandler(cfg *config.Config, cssVersion string) (*BaseHandler, error) {
	logger := logging.GetLogger("base-handler")
	logger.Debug().Msg("Parsing templates")

	loc, err := time.LoadLocation(cfg.Picker.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load picker timezone: %w", err)
	}

	style := cfg.Picker.DigitStyle
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"js": func(v interface{}) template.JS {
			a, _ := json.Marshal(v)
			return template.JS(a)
		},
		"digits": func(n int) string {
			return calfmt.FormatNumber(n, style)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse templates")
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	logger.Debug().Msg("Templates parsed successfully")

	return &BaseHandler{
		tmpl:       tmpl,
		Config:     cfg,
		Location:   loc,
		Now:        time.Now,
		logger:     logger,
		cssVersion: cssVersion,
	}, nil
}

// Today returns the current Jalaali date in the configured timezone.
func (h *BaseHandler) Today() jalaali.Date {
	return jalaali.Today(h.Now(), h.Location)
}

// DigitStyle returns the style requested by the "digits" query parameter,
// falling back to the configured one.
func (h *BaseHandler) DigitStyle(r *http.Request) (constants.DigitStyle, error) {
	raw := r.URL.Query().Get("digits")
	if raw == "" {
		return h.Config.Picker.DigitStyle, nil
	}
	return constants.ParseDigitStyle(raw)
}

// RenderTemplate renders a template with the given data
func (h *BaseHandler) RenderTemplate(w http.ResponseWriter, name string, data interface{}) {
	h.logger.Debug().Str("template_name", name).Msg("Executing template")

	tmpl, err := h.tmpl.Clone()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to clone template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	_, err = tmpl.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to parse page template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		h.logger.Error().Err(err).Str("template", name).Msg("Failed to execute template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// ErrorResponse is the JSON body of every failed API call
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// WriteError writes an ErrorResponse for code; err, when set, becomes the detail
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, code string, err error) {
	resp := ErrorResponse{Code: code, Message: GetErrorMessage(code)}
	if err != nil {
		resp.Detail = err.Error()
	}
	h.WriteJSON(w, status, resp)
}

// DecodeJSON reads a bounded JSON body into v, rejecting unknown fields.
// An empty body leaves v untouched.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// BasePageData contains common data for all pages
type BasePageData struct {
	AppName     string
	CurrentYear int
	CurrentPath string
	CSSVersion  string
}

// NewBasePageData creates a new BasePageData with common fields populated
func (h *BaseHandler) NewBasePageData(r *http.Request) BasePageData {
	return BasePageData{
		AppName:     constants.AppIdentifier,
		CurrentYear: h.Today().Year,
		CurrentPath: r.URL.Path,
		CSSVersion:  h.cssVersion,
	}
}
