// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a [Repository] when no person matches.
var ErrNotFound = errors.New("person: not found")

// Repository persists persons of both kinds.
//
// Create and Update must reject a CPF or email already held by another
// person with an [apperr.AppError] of code DATA_VIOLATION.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Person, error)
	FindByEmail(ctx context.Context, email string) (*Person, error)
	FindByCPF(ctx context.Context, cpf string) (*Person, error)
	List(ctx context.Context, kind Kind) ([]*Person, error)
	Create(ctx context.Context, person *Person) error
	Update(ctx context.Context, person *Person) error
	Delete(ctx context.Context, id int64) error
}

// TicketCounter reports how many tickets reference a person, as client or
// as technician.
type TicketCounter interface {
	CountByPerson(ctx context.Context, personID int64) (int, error)
}
