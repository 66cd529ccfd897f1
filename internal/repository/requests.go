package repository

import (
	"context"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/google/uuid"
)

const insertRequestSQL = `
INSERT INTO requests (id, employee, client_id, urgency, request_text, submitted_at)
VALUES ($1, $2, $3, $4, $5, $6)`

// RecordRequest inserts the audit record for a forwarded submission.
func (q *Queries) RecordRequest(ctx context.Context, params domain.RecordRequestParams) (uuid.UUID, error) {
	id := uuid.New()
	_, err := q.db.ExecContext(ctx, insertRequestSQL,
		id,
		params.Employee,
		params.ClientID,
		int(params.Urgency),
		params.RequestText,
		params.SubmittedAt,
	)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
