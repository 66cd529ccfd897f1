// Package repository contains the database access layer.
//
// Queries are hand-written, parameterized SQL executed through database/sql
// with the pgx stdlib driver.
package repository

import (
	"database/sql"
)

// Queries provides access to all database queries.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance backed by the given database handle.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}
