// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/helpdesk/internal/person"
	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/platform/validate"
	"github.com/taibuivan/helpdesk/pkg/date"
	"github.com/taibuivan/helpdesk/pkg/pointer"
	"github.com/taibuivan/helpdesk/pkg/textnorm"
)

// PersonLookup resolves a person of a given kind, failing with NOT_FOUND
// when the id is unknown or belongs to the other kind.
type PersonLookup interface {
	Get(ctx context.Context, kind person.Kind, id int64) (*person.Person, error)
}

// Input carries the writable fields of a ticket. Nil pointers mean the
// field was not sent.
type Input struct {
	Priority     *int
	Status       *int
	Title        string
	Notes        string
	TechnicianID *int64
	ClientID     *int64
}

type Service struct {
	repo   Repository
	people PersonLookup
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, people PersonLookup, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		people: people,
		logger: logger,
		now:    time.Now,
	}
}

func (service *Service) Get(ctx context.Context, id int64) (*Ticket, error) {
	ticket, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Object not found! Id: %d", id))
		}
		return nil, err
	}
	return ticket, nil
}

func (service *Service) List(ctx context.Context) ([]*Ticket, error) {
	return service.repo.List(ctx)
}

/*
Create opens a ticket on behalf of actor.

Description: A caller holding only ROLE_CLIENTE opens tickets for
themselves; clienteId defaults to the caller and any other value is
refused. Priority and status default to BAIXA and ABERTO.

Returns:
  - *Ticket: The stored ticket with names projected
  - error: UNAUTHORIZED, FORBIDDEN, VALIDATION_ERROR, NOT_FOUND
*/
func (service *Service) Create(ctx context.Context, input Input, actor *sec.SecurityContext) (*Ticket, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	if !actor.HasAnyRole(sec.RoleAdmin, sec.RoleTecnico) {
		if input.ClientID == nil {
			input.ClientID = pointer.To(actor.UserID)
		}
		if *input.ClientID != actor.UserID {
			return nil, apperr.Forbidden("Clients may only open tickets for themselves")
		}
	}

	today := date.Of(service.now())
	ticket := &Ticket{OpenedAt: today}
	if err := service.apply(ctx, ticket, input, today); err != nil {
		return nil, err
	}

	if err := service.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "ticket_opened",
		slog.Int64("ticket_id", ticket.ID),
		slog.Int64("client_id", ticket.ClientID),
		slog.Int64("technician_id", ticket.TechnicianID),
	)
	return ticket, nil
}

// Update rewrites a ticket's writable fields. See [Ticket.applyStatus] for
// how the closing date follows the status.
func (service *Service) Update(ctx context.Context, id int64, input Input) (*Ticket, error) {
	existing, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if err := service.apply(ctx, &updated, input, date.Of(service.now())); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Object not found! Id: %d", id))
		}
		return nil, err
	}

	service.logger.InfoContext(ctx, "ticket_updated",
		slog.Int64("ticket_id", id),
		slog.String("status", updated.Status.String()),
	)
	return &updated, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound(fmt.Sprintf("Object not found! Id: %d", id))
		}
		return err
	}

	service.logger.WarnContext(ctx, "ticket_deleted", slog.Int64("ticket_id", id))
	return nil
}

// apply validates input, resolves both persons and writes the result into ticket.
func (service *Service) apply(ctx context.Context, ticket *Ticket, input Input, today date.Date) error {
	// Omitted codes keep the ticket's current values, which for a new
	// ticket are BAIXA and ABERTO.
	priorityCode := ticket.Priority.Code()
	if input.Priority != nil {
		priorityCode = *input.Priority
	}
	priority := Priority(priorityCode)

	statusCode := ticket.Status.Code()
	if input.Status != nil {
		statusCode = *input.Status
	}
	status := Status(statusCode)
	title := textnorm.Text(input.Title)
	notes := textnorm.Text(input.Notes)

	validator := &validate.Validator{}
	validator.Custom(FieldPriority, !priority.Valid() || priority.Code() != priorityCode, "Invalid priority code")
	validator.Custom(FieldStatus, !status.Valid() || status.Code() != statusCode, "Invalid status code")
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, maxTitleLength)
	validator.Required(FieldNotes, notes)
	validator.Custom(FieldTechnicianID, input.TechnicianID == nil, "This field is required")
	validator.Custom(FieldClientID, input.ClientID == nil, "This field is required")
	if err := validator.Err(); err != nil {
		return err
	}

	technician, err := service.people.Get(ctx, person.KindTechnician, *input.TechnicianID)
	if err != nil {
		return err
	}
	client, err := service.people.Get(ctx, person.KindClient, *input.ClientID)
	if err != nil {
		return err
	}

	ticket.Priority = priority
	ticket.Title = title
	ticket.Notes = notes
	ticket.TechnicianID = technician.ID
	ticket.TechnicianName = technician.Name
	ticket.ClientID = client.ID
	ticket.ClientName = client.Name
	ticket.applyStatus(status, today)
	return nil
}
