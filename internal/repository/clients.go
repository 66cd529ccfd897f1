package repository

import (
	"context"
	"strings"

	"github.com/docuquest/docuquest/internal/domain"
	"github.com/google/uuid"
)

const searchClientsSQL = `
SELECT id, name, email, company, created_at, updated_at
FROM clients
WHERE name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
ORDER BY name, id
LIMIT $2`

// SearchClients returns clients whose name or email contains the query,
// case-insensitive, ordered by name.
func (q *Queries) SearchClients(ctx context.Context, params domain.SearchClientsParams) ([]domain.Client, error) {
	rows, err := q.db.QueryContext(ctx, searchClientsSQL, escapeLike(params.Query), params.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

const getClientByIDSQL = `
SELECT id, name, email, company, created_at, updated_at
FROM clients
WHERE id = $1`

// GetClientByID retrieves a single client record.
// Returns sql.ErrNoRows if no such client exists.
func (q *Queries) GetClientByID(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	var c domain.Client
	err := q.db.QueryRowContext(ctx, getClientByIDSQL, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.Company, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// escapeLike neutralizes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
