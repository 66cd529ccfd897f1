// Package handler contains HTTP handlers for the DocuQuest application.
//
// This file implements the typeahead search endpoint behind the client
// field:
//
// Route:
//   - GET /clients/search?q=<text>&seq=<n> -> Search
//
// The browser debounces input (300ms quiet period) before hitting this
// endpoint. The seq parameter is a client-issued sequence number echoed
// back in the fragment so stale responses can be discarded.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/docuquest/docuquest/internal/service"
)

// ClientResultsData contains data for the typeahead dropdown fragment.
type ClientResultsData struct {
	Clients []domain.Client
	Query   string
	Seq     string // Echoed client sequence number for stale-response suppression
	Open    bool   // Whether the dropdown should be shown at all
}

// ClientSearchHandler handles typeahead lookups against the client directory.
type ClientSearchHandler struct {
	clientService service.ClientService
	renderer      *Renderer
	logger        *slog.Logger
}

// NewClientSearchHandler creates a new ClientSearchHandler.
func NewClientSearchHandler(
	clientService service.ClientService,
	renderer *Renderer,
	logger *slog.Logger,
) *ClientSearchHandler {
	return &ClientSearchHandler{
		clientService: clientService,
		renderer:      renderer,
		logger:        logger,
	}
}

// RegisterRoutes registers search routes on the provided mux.
func (h *ClientSearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /clients/search", h.Search)
}

// Search renders the dropdown fragment for a typeahead query.
//
// Short queries (under the minimum length) clear the dropdown. A directory
// failure is logged and answered with 204 No Content so the fragment on
// screen, and the results it shows, stay untouched.
func (h *ClientSearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	seq := r.URL.Query().Get("seq")

	if len([]rune(query)) < domain.MinSearchLength {
		h.renderer.RenderPartial(w, "client_results", ClientResultsData{
			Query: query,
			Seq:   seq,
			Open:  false,
		})
		return
	}

	clients, err := h.clientService.Search(r.Context(), query)
	if err != nil {
		h.logger.Error("client search failed", "error", err, "query_len", len(query))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	// An empty result set still opens the dropdown, to show "no results".
	h.renderer.RenderPartial(w, "client_results", ClientResultsData{
		Clients: clients,
		Query:   query,
		Seq:     seq,
		Open:    true,
	})
}
