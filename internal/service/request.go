// Package service contains the business logic layer.
//
// This file implements the submission pipeline: validate the form, resolve
// the selected client, forward the payload to the workflow webhook, and
// record the forwarded submission.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/docuquest/docuquest/internal/metrics"
	"github.com/docuquest/docuquest/internal/webhook"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// =============================================================================
// Interface Definitions
// =============================================================================

// RequestStore is the repository surface the request service depends on.
// *repository.Queries satisfies it.
type RequestStore interface {
	GetClientByID(ctx context.Context, id uuid.UUID) (domain.Client, error)
	RecordRequest(ctx context.Context, params domain.RecordRequestParams) (uuid.UUID, error)
}

// RequestService defines the interface for submitting document requests.
type RequestService interface {
	// Submit validates the form and forwards it to the workflow webhook.
	// Returns *domain.ValidationError when any field fails validation (the
	// webhook is not called), domain.EUNAVAILABLE when delivery fails, and
	// the forwarded payload on success.
	Submit(ctx context.Context, params domain.SubmitRequestParams) (*domain.SubmissionPayload, error)
}

// =============================================================================
// Implementation
// =============================================================================

type requestService struct {
	store      RequestStore
	dispatcher webhook.Dispatcher
	sanitizer  *bluemonday.Policy
	logger     *slog.Logger
	now        func() time.Time
}

// NewRequestService creates a new RequestService.
func NewRequestService(store RequestStore, dispatcher webhook.Dispatcher, logger *slog.Logger) RequestService {
	return &requestService{
		store:      store,
		dispatcher: dispatcher,
		// Request text is free text; strip any markup before it leaves
		// this system.
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
		now:       time.Now,
	}
}

// Submit runs the submission pipeline for one form attempt.
func (s *requestService) Submit(ctx context.Context, params domain.SubmitRequestParams) (*domain.SubmissionPayload, error) {
	const op = "request.submit"

	// The full error set is recomputed on every attempt.
	if err := params.Validate(); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	// Validate guarantees a well-formed UUID.
	clientID, err := uuid.Parse(params.ClientID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.Invalid(op, "client reference is malformed")
	}

	// The selected client must be a record a search previously returned,
	// i.e. one that exists in the directory.
	client, err := s.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
			return nil, &domain.ValidationError{
				Op:     op,
				Fields: map[string]string{"client_id": "Please select a client from the search results"},
			}
		}
		return nil, domain.Internal(err, op, "failed to resolve client")
	}

	payload := domain.NewSubmissionPayload(
		params.Employee,
		client,
		params.ParsedUrgency(),
		s.sanitizer.Sanitize(params.Request),
		s.now(),
	)

	start := time.Now()
	err = s.dispatcher.Dispatch(ctx, payload)
	metrics.WebhookDeliveryDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	// The webhook accepted the submission; an audit write failure must not
	// turn that into a user-visible error.
	submittedAt, _ := time.Parse(time.RFC3339, payload.Timestamp)
	requestID, err := s.store.RecordRequest(ctx, domain.RecordRequestParams{
		Employee:    params.Employee,
		ClientID:    client.ID,
		Urgency:     params.ParsedUrgency(),
		RequestText: payload.Request,
		SubmittedAt: submittedAt,
	})
	if err != nil {
		s.logger.Error("failed to record forwarded submission",
			"error", err,
			"employee", params.Employee,
			"client_id", client.ID,
		)
	}

	metrics.SubmissionsTotal.WithLabelValues("forwarded").Inc()

	s.logger.Info("request forwarded",
		"request_id", requestID,
		"employee", params.Employee,
		"client_id", client.ID,
		"urgency", payload.Urgency,
	)

	return &payload, nil
}
