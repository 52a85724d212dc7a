// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/helpdesk/internal/platform/database/schema"
	"github.com/taibuivan/helpdesk/internal/platform/dberr"
	"github.com/taibuivan/helpdesk/pkg/date"
)

// referenceMessages maps the ticket foreign keys to client messages.
var referenceMessages = map[string]string{
	schema.Ticket.ForeignTechnician: "Technician does not exist",
	schema.Ticket.ForeignClient:     "Client does not exist",
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// selectQuery joins both referenced persons to project their names.
var selectQuery = fmt.Sprintf(`
	SELECT t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, t.%s, tech.%s, t.%s, cli.%s
	FROM %s t
	JOIN %s tech ON tech.%s = t.%s
	JOIN %s cli ON cli.%s = t.%s`,
	schema.Ticket.ID, schema.Ticket.OpenedAt, schema.Ticket.ClosedAt,
	schema.Ticket.Priority, schema.Ticket.Status, schema.Ticket.Title, schema.Ticket.Notes,
	schema.Ticket.TechnicianID, schema.Person.Name, schema.Ticket.ClientID, schema.Person.Name,
	schema.Ticket.Table,
	schema.Person.Table, schema.Person.ID, schema.Ticket.TechnicianID,
	schema.Person.Table, schema.Person.ID, schema.Ticket.ClientID,
)

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Ticket, error) {
	query := fmt.Sprintf(`%s WHERE t.%s = $1`, selectQuery, schema.Ticket.ID)

	ticket, err := scanTicket(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "find_ticket_by_id", nil)
	}
	return ticket, nil
}

// List implements [Repository]. Tickets are ordered by id.
func (repository *PostgresRepository) List(ctx context.Context) ([]*Ticket, error) {
	query := fmt.Sprintf(`%s ORDER BY t.%s ASC`, selectQuery, schema.Ticket.ID)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_tickets", nil)
	}
	defer rows.Close()

	tickets := []*Ticket{}
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_ticket", nil)
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_tickets", nil)
	}

	return tickets, nil
}

// Create implements [Repository]. It sets ticket.ID.
func (repository *PostgresRepository) Create(ctx context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`,
		schema.Ticket.Table,
		schema.Ticket.OpenedAt, schema.Ticket.ClosedAt, schema.Ticket.Priority, schema.Ticket.Status,
		schema.Ticket.Title, schema.Ticket.Notes, schema.Ticket.TechnicianID, schema.Ticket.ClientID,
		schema.Ticket.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		ticket.OpenedAt.Time(),
		nullableDate(ticket.ClosedAt),
		int16(ticket.Priority),
		int16(ticket.Status),
		ticket.Title,
		ticket.Notes,
		ticket.TechnicianID,
		ticket.ClientID,
	).Scan(&ticket.ID)
	if err != nil {
		return dberr.Wrap(err, "create_ticket", referenceMessages)
	}
	return nil
}

// Update implements [Repository]. The opening date never changes.
func (repository *PostgresRepository) Update(ctx context.Context, ticket *Ticket) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.Ticket.Table,
		schema.Ticket.ClosedAt, schema.Ticket.Priority, schema.Ticket.Status, schema.Ticket.Title,
		schema.Ticket.Notes, schema.Ticket.TechnicianID, schema.Ticket.ClientID,
		schema.Ticket.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		ticket.ID,
		nullableDate(ticket.ClosedAt),
		int16(ticket.Priority),
		int16(ticket.Status),
		ticket.Title,
		ticket.Notes,
		ticket.TechnicianID,
		ticket.ClientID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_ticket", referenceMessages)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Ticket.Table, schema.Ticket.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_ticket", nil)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByPerson implements [Repository].
func (repository *PostgresRepository) CountByPerson(ctx context.Context, personID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1 OR %s = $1`,
		schema.Ticket.Table, schema.Ticket.TechnicianID, schema.Ticket.ClientID,
	)

	var count int
	if err := repository.db.QueryRow(ctx, query, personID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_tickets_by_person", nil)
	}
	return count, nil
}

func scanTicket(row pgx.Row) (*Ticket, error) {
	var (
		ticket   Ticket
		openedAt time.Time
		closedAt *time.Time
		priority int16
		status   int16
	)

	if err := row.Scan(
		&ticket.ID,
		&openedAt,
		&closedAt,
		&priority,
		&status,
		&ticket.Title,
		&ticket.Notes,
		&ticket.TechnicianID,
		&ticket.TechnicianName,
		&ticket.ClientID,
		&ticket.ClientName,
	); err != nil {
		return nil, err
	}

	ticket.OpenedAt = date.Of(openedAt)
	if closedAt != nil {
		ticket.ClosedAt = date.Of(*closedAt)
	}
	ticket.Priority = Priority(priority)
	ticket.Status = Status(status)
	return &ticket, nil
}

func nullableDate(d date.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}
