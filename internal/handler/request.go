// Package handler contains HTTP handlers for the DocuQuest application.
//
// This file implements the document request form:
//
// Routes:
//   - GET  /         -> ShowForm (full page)
//   - POST /requests -> Submit (htmx fragment, or full page without htmx)
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/docuquest/docuquest/internal/service"
)

// =============================================================================
// Template Data Types
// =============================================================================

// RequestFormData contains data for the request form page and its htmx
// fragment.
type RequestFormData struct {
	CurrentPath string
	Employees   []string          // Roster identifiers, in display order
	Urgencies   []domain.Urgency  // Selectable urgency levels
	Form        map[string]string // Form field values (preserved on error)
	Errors      map[string]string // Field-level validation errors
	Alert       string            // Blocking submission failure message
	Success     bool              // Render the transient success banner
	SubmittedAt time.Time         // When the forwarded payload was sent
}

// newRequestFormData returns form data with an empty form.
func newRequestFormData(path string) RequestFormData {
	return RequestFormData{
		CurrentPath: path,
		Employees:   domain.EmployeeIDs(),
		Urgencies:   domain.Urgencies(),
		Form:        map[string]string{},
	}
}

// =============================================================================
// Handler Configuration
// =============================================================================

// RequestHandler handles the document request form.
type RequestHandler struct {
	requestService service.RequestService
	renderer       *Renderer
	logger         *slog.Logger
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(
	requestService service.RequestService,
	renderer *Renderer,
	logger *slog.Logger,
) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		renderer:       renderer,
		logger:         logger,
	}
}

// RegisterRoutes registers request form routes on the provided mux.
func (h *RequestHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.ShowForm)
	mux.HandleFunc("POST /requests", h.Submit)
}

// =============================================================================
// GET / - Request Form
// =============================================================================

// ShowForm renders the empty document request form.
func (h *RequestHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "home", newRequestFormData(r.URL.Path))
}

// =============================================================================
// POST /requests - Submit
// =============================================================================

// Submit processes a document request submission.
func (h *RequestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("failed to parse form", "error", err)
		data := newRequestFormData("/")
		data.Alert = "Invalid form submission. Please try again."
		h.renderForm(w, r, data)
		return
	}

	params := domain.SubmitRequestParams{
		Employee: strings.TrimSpace(r.FormValue("employee")),
		ClientID: strings.TrimSpace(r.FormValue("client_id")),
		Urgency:  strings.TrimSpace(r.FormValue("urgency")),
		Request:  r.FormValue("request"),
	}

	// Values preserved for re-rendering on any failure.
	data := newRequestFormData("/")
	data.Form = map[string]string{
		"employee":     params.Employee,
		"client_id":    params.ClientID,
		"client_label": strings.TrimSpace(r.FormValue("client_label")),
		"urgency":      params.Urgency,
		"request":      params.Request,
	}

	payload, err := h.requestService.Submit(r.Context(), params)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			data.Errors = ve.Fields
			h.renderForm(w, r, data)
		case domain.ErrorCode(err) == domain.EUNAVAILABLE:
			data.Alert = domain.ErrorMessage(err)
			h.renderForm(w, r, data)
		default:
			if r.Header.Get("HX-Request") != "true" {
				ErrorResponse(w, r, h.logger, err)
				return
			}
			h.logger.Error("submission failed", "error", err)
			data.Alert = "Something went wrong while sending your request. Please try again."
			h.renderForm(w, r, data)
		}
		return
	}

	// Success: reset the form wholesale and show the transient banner.
	fresh := newRequestFormData("/")
	fresh.Success = true
	if payload != nil {
		if ts, perr := time.Parse(time.RFC3339, payload.Timestamp); perr == nil {
			fresh.SubmittedAt = ts
		}
	}
	h.renderForm(w, r, fresh)
}

// renderForm renders the form fragment for htmx requests, or the full page
// otherwise.
func (h *RequestHandler) renderForm(w http.ResponseWriter, r *http.Request, data RequestFormData) {
	if r.Header.Get("HX-Request") == "true" {
		h.renderer.RenderPartial(w, "request_form", data)
		return
	}
	h.renderer.RenderHTTP(w, "home", data)
}
