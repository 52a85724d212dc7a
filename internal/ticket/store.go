// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a [Repository] when no ticket matches.
var ErrNotFound = errors.New("ticket: not found")

// Repository persists tickets.
//
// Reads fill TechnicianName and ClientName from the referenced persons.
// CountByPerson makes a Repository usable as a person.TicketCounter.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context) ([]*Ticket, error)
	Create(ctx context.Context, ticket *Ticket) error
	Update(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id int64) error
	CountByPerson(ctx context.Context, personID int64) (int, error)
}
