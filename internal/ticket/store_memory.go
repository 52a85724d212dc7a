// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/taibuivan/helpdesk/internal/person"
	"github.com/taibuivan/helpdesk/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests and by the
// memory storage driver. Names are read from people on every read, the way
// the Postgres store joins them.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	tickets map[int64]Ticket
	people  person.Repository
}

// NewMemoryRepository returns an empty repository backed by people for
// reference checks and name projection.
func NewMemoryRepository(people person.Repository) *MemoryRepository {
	return &MemoryRepository{tickets: make(map[int64]Ticket), people: people}
}

func (repository *MemoryRepository) FindByID(ctx context.Context, id int64) (*Ticket, error) {
	repository.mu.RLock()
	stored, ok := repository.tickets[id]
	repository.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if err := repository.project(ctx, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (repository *MemoryRepository) List(ctx context.Context) ([]*Ticket, error) {
	repository.mu.RLock()
	tickets := make([]*Ticket, 0, len(repository.tickets))
	for _, stored := range repository.tickets {
		found := stored
		tickets = append(tickets, &found)
	}
	repository.mu.RUnlock()

	sort.Slice(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })
	for _, ticket := range tickets {
		if err := repository.project(ctx, ticket); err != nil {
			return nil, err
		}
	}
	return tickets, nil
}

func (repository *MemoryRepository) Create(ctx context.Context, ticket *Ticket) error {
	if err := repository.checkReferences(ctx, ticket); err != nil {
		return err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	repository.nextID++
	ticket.ID = repository.nextID
	repository.tickets[ticket.ID] = strip(*ticket)
	return nil
}

func (repository *MemoryRepository) Update(ctx context.Context, ticket *Ticket) error {
	if err := repository.checkReferences(ctx, ticket); err != nil {
		return err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.tickets[ticket.ID]
	if !ok {
		return ErrNotFound
	}

	updated := strip(*ticket)
	updated.OpenedAt = stored.OpenedAt
	repository.tickets[ticket.ID] = updated
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(repository.tickets, id)
	return nil
}

func (repository *MemoryRepository) CountByPerson(_ context.Context, personID int64) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	count := 0
	for _, stored := range repository.tickets {
		if stored.TechnicianID == personID || stored.ClientID == personID {
			count++
		}
	}
	return count, nil
}

func (repository *MemoryRepository) checkReferences(ctx context.Context, ticket *Ticket) error {
	if _, err := repository.people.FindByID(ctx, ticket.TechnicianID); err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return apperr.DataViolation("Technician does not exist")
		}
		return err
	}
	if _, err := repository.people.FindByID(ctx, ticket.ClientID); err != nil {
		if errors.Is(err, person.ErrNotFound) {
			return apperr.DataViolation("Client does not exist")
		}
		return err
	}
	return nil
}

func (repository *MemoryRepository) project(ctx context.Context, ticket *Ticket) error {
	technician, err := repository.people.FindByID(ctx, ticket.TechnicianID)
	if err != nil {
		return err
	}
	client, err := repository.people.FindByID(ctx, ticket.ClientID)
	if err != nil {
		return err
	}
	ticket.TechnicianName = technician.Name
	ticket.ClientName = client.Name
	return nil
}

// strip drops the projected names so stored rows hold references only.
func strip(ticket Ticket) Ticket {
	ticket.TechnicianName = ""
	ticket.ClientName = ""
	return ticket
}
