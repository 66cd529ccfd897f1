// Package service contains the business logic layer.
//
// This file implements the client directory search behind the typeahead.
package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/docuquest/docuquest/internal/metrics"
	"github.com/google/uuid"
)

// =============================================================================
// Interface Definitions
// =============================================================================

// ClientStore is the repository surface the client service depends on.
// *repository.Queries satisfies it.
type ClientStore interface {
	SearchClients(ctx context.Context, params domain.SearchClientsParams) ([]domain.Client, error)
	GetClientByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
}

// ClientService defines the interface for client directory lookups.
type ClientService interface {
	// Search returns up to domain.MaxSearchResults clients whose name or
	// email contains the query, case-insensitive. Queries shorter than
	// domain.MinSearchLength (after trimming) return no results and issue
	// no directory lookup.
	Search(ctx context.Context, query string) ([]domain.Client, error)
}

// =============================================================================
// Implementation
// =============================================================================

type clientService struct {
	store  ClientStore
	logger *slog.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(store ClientStore, logger *slog.Logger) ClientService {
	return &clientService{
		store:  store,
		logger: logger,
	}
}

// Search performs a directory lookup for the typeahead.
func (s *clientService) Search(ctx context.Context, query string) ([]domain.Client, error) {
	const op = "client.search"

	query = strings.TrimSpace(query)
	if len([]rune(query)) < domain.MinSearchLength {
		metrics.ClientSearchesTotal.WithLabelValues("skipped").Inc()
		return nil, nil
	}

	clients, err := s.store.SearchClients(ctx, domain.SearchClientsParams{
		Query: query,
		Limit: domain.MaxSearchResults,
	})
	if err != nil {
		metrics.ClientSearchesTotal.WithLabelValues("error").Inc()
		return nil, domain.Internal(err, op, "client directory lookup failed")
	}

	metrics.ClientSearchesTotal.WithLabelValues("ok").Inc()

	s.logger.Debug("client search",
		"query_len", len(query),
		"results", len(clients),
	)

	return clients, nil
}
