// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/helpdesk/internal/platform/database/schema"
	"github.com/taibuivan/helpdesk/internal/platform/dberr"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/pkg/date"
)

// uniqueMessages maps the person table's unique constraints to client messages.
var uniqueMessages = map[string]string{
	schema.Person.UniqueCPF:   MsgCPFTaken,
	schema.Person.UniqueEmail: MsgEmailTaken,
}

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation of [Repository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var selectColumns = strings.Join(schema.Person.Columns(), ", ")

func (repository *PostgresRepository) findOne(ctx context.Context, column string, value any) (*Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, selectColumns, schema.Person.Table, column)

	person, err := scanPerson(repository.db.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dberr.Wrap(err, "find_person_by_"+column, nil)
	}
	return person, nil
}

// FindByID implements [Repository].
func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*Person, error) {
	return repository.findOne(ctx, schema.Person.ID, id)
}

// FindByEmail implements [Repository].
func (repository *PostgresRepository) FindByEmail(ctx context.Context, email string) (*Person, error) {
	return repository.findOne(ctx, schema.Person.Email, email)
}

// FindByCPF implements [Repository].
func (repository *PostgresRepository) FindByCPF(ctx context.Context, cpf string) (*Person, error) {
	return repository.findOne(ctx, schema.Person.CPF, cpf)
}

// List implements [Repository]. Persons are ordered by id.
func (repository *PostgresRepository) List(ctx context.Context, kind Kind) ([]*Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		selectColumns, schema.Person.Table, schema.Person.Kind, schema.Person.ID,
	)

	rows, err := repository.db.Query(ctx, query, int16(kind))
	if err != nil {
		return nil, dberr.Wrap(err, "list_persons", nil)
	}
	defer rows.Close()

	persons := []*Person{}
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_person", nil)
		}
		persons = append(persons, person)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_persons", nil)
	}

	return persons, nil
}

// Create implements [Repository]. It sets person.ID.
func (repository *PostgresRepository) Create(ctx context.Context, person *Person) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`,
		schema.Person.Table,
		schema.Person.Kind, schema.Person.Name, schema.Person.CPF, schema.Person.Email,
		schema.Person.PasswordHash, schema.Person.Roles, schema.Person.CreatedAt,
		schema.Person.ID,
	)

	err := repository.db.QueryRow(ctx, query,
		int16(person.Kind),
		person.Name,
		person.CPF,
		person.Email,
		person.PasswordHash,
		roleCodes(person.Roles),
		person.CreatedAt.Time(),
	).Scan(&person.ID)
	if err != nil {
		return dberr.Wrap(err, "create_person", uniqueMessages)
	}
	return nil
}

// Update implements [Repository]. Kind and creation date never change.
func (repository *PostgresRepository) Update(ctx context.Context, person *Person) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.Person.Table,
		schema.Person.Name, schema.Person.CPF, schema.Person.Email, schema.Person.PasswordHash, schema.Person.Roles,
		schema.Person.ID,
	)

	tag, err := repository.db.Exec(ctx, query,
		person.ID,
		person.Name,
		person.CPF,
		person.Email,
		person.PasswordHash,
		roleCodes(person.Roles),
	)
	if err != nil {
		return dberr.Wrap(err, "update_person", uniqueMessages)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete implements [Repository].
func (repository *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Person.Table, schema.Person.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_person", map[string]string{
			schema.Ticket.ForeignClient:     "Person has service orders and cannot be deleted",
			schema.Ticket.ForeignTechnician: "Person has service orders and cannot be deleted",
		})
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPerson(row pgx.Row) (*Person, error) {
	var (
		person    Person
		kind      int16
		roles     []int16
		createdAt time.Time
	)

	if err := row.Scan(
		&person.ID,
		&kind,
		&person.Name,
		&person.CPF,
		&person.Email,
		&person.PasswordHash,
		&roles,
		&createdAt,
	); err != nil {
		return nil, err
	}

	codes := make([]int, len(roles))
	for i, code := range roles {
		codes[i] = int(code)
	}
	roleSet, err := sec.RoleSetFromCodes(codes...)
	if err != nil {
		return nil, fmt.Errorf("person %d: %w", person.ID, err)
	}

	person.Kind = Kind(kind)
	person.Roles = roleSet
	person.CreatedAt = date.Of(createdAt)
	return &person, nil
}

func roleCodes(roles sec.RoleSet) []int16 {
	codes := roles.Codes()
	out := make([]int16, len(codes))
	for i, code := range codes {
		out[i] = int16(code)
	}
	return out
}
