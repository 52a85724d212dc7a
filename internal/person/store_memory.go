// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/helpdesk/internal/platform/apperr"
)

// MemoryRepository is an in-process [Repository] used by tests and by the
// memory storage driver. It enforces the same uniqueness rules as Postgres.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	persons map[int64]Person
}

// NewMemoryRepository returns an empty repository. IDs start at 1.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{persons: make(map[int64]Person)}
}

func (repository *MemoryRepository) find(match func(Person) bool) (*Person, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, stored := range repository.persons {
		if match(stored) {
			found := stored
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (repository *MemoryRepository) FindByID(_ context.Context, id int64) (*Person, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.persons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &stored, nil
}

func (repository *MemoryRepository) FindByEmail(_ context.Context, email string) (*Person, error) {
	return repository.find(func(p Person) bool { return p.Email == email })
}

func (repository *MemoryRepository) FindByCPF(_ context.Context, cpf string) (*Person, error) {
	return repository.find(func(p Person) bool { return p.CPF == cpf })
}

func (repository *MemoryRepository) List(_ context.Context, kind Kind) ([]*Person, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	persons := []*Person{}
	for _, stored := range repository.persons {
		if stored.Kind == kind {
			found := stored
			persons = append(persons, &found)
		}
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons, nil
}

func (repository *MemoryRepository) Create(_ context.Context, person *Person) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if err := repository.checkUnique(person, 0); err != nil {
		return err
	}

	repository.nextID++
	person.ID = repository.nextID
	repository.persons[person.ID] = *person
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, person *Person) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.persons[person.ID]
	if !ok {
		return ErrNotFound
	}
	if err := repository.checkUnique(person, person.ID); err != nil {
		return err
	}

	updated := *person
	updated.Kind = stored.Kind
	updated.CreatedAt = stored.CreatedAt
	repository.persons[person.ID] = updated
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id int64) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.persons[id]; !ok {
		return ErrNotFound
	}
	delete(repository.persons, id)
	return nil
}

// checkUnique must be called with the write lock held. self is ignored so a
// person can keep its own CPF and email on update.
func (repository *MemoryRepository) checkUnique(person *Person, self int64) error {
	for id, stored := range repository.persons {
		if id == self {
			continue
		}
		if stored.CPF == person.CPF {
			return apperr.DataViolation(MsgCPFTaken)
		}
		if stored.Email == person.Email {
			return apperr.DataViolation(MsgEmailTaken)
		}
	}
	return nil
}
