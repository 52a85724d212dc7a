// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/platform/validate"
	"github.com/taibuivan/helpdesk/pkg/date"
	"github.com/taibuivan/helpdesk/pkg/textnorm"
)

// Hasher produces one-way password hashes.
type Hasher interface {
	Hash(plainText string) (string, error)
}

// Invalidator evicts stale principals after a person changes.
type Invalidator interface {
	Invalidate(ctx context.Context, identities ...string)
}

// Input carries the writable fields of a person.
//
// Roles is nil when the caller did not send any. Password may be empty on
// update, in which case the stored hash is kept.
type Input struct {
	Name     string
	CPF      string
	Email    string
	Password string
	Roles    []int
}

// Service implements person use cases for a single store shared by both kinds.
type Service struct {
	repo        Repository
	tickets     TicketCounter
	hasher      Hasher
	invalidator Invalidator
	logger      *slog.Logger
	now         func() time.Time
}

// NewService builds a [Service]. invalidator may be nil.
func NewService(repo Repository, tickets TicketCounter, hasher Hasher, invalidator Invalidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		tickets:     tickets,
		hasher:      hasher,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

func notFound(id int64) error {
	return apperr.NotFound(fmt.Sprintf("Object not found! Id: %d", id))
}

// Get returns the person with id, which must be of the given kind.
func (service *Service) Get(ctx context.Context, kind Kind, id int64) (*Person, error) {
	person, err := service.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}
	if person.Kind != kind {
		return nil, notFound(id)
	}
	return person, nil
}

// List returns every person of the given kind ordered by id.
func (service *Service) List(ctx context.Context, kind Kind) ([]*Person, error) {
	return service.repo.List(ctx, kind)
}

/*
Create registers a new person of the given kind.

Description: Whatever roles the caller asked for, the person is granted only
the role matching its kind. The creation date is today.

Returns:
  - *Person: The stored person with its ID set
  - error: VALIDATION_ERROR, DATA_VIOLATION or storage failures
*/
func (service *Service) Create(ctx context.Context, kind Kind, input Input) (*Person, error) {
	input = normalise(input)

	validator := validateInput(input)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkUnique(ctx, input, 0); err != nil {
		return nil, err
	}

	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("person_hash_password_failed: %w", err)
	}

	person := &Person{
		Kind:         kind,
		Name:         input.Name,
		CPF:          input.CPF,
		Email:        input.Email,
		PasswordHash: hash,
		Roles:        sec.NewRoleSet(kind.Role()),
		CreatedAt:    date.Of(service.now()),
	}

	if err := service.repo.Create(ctx, person); err != nil {
		return nil, err
	}

	service.logger.InfoContext(ctx, "person_created",
		slog.Int64("person_id", person.ID),
		slog.String("kind", kind.String()),
	)
	return person, nil
}

/*
Update rewrites a person's writable fields.

Description: Only an admin or the person themselves may update a record.
Role changes are honoured for admins only, and the role matching the
person's kind is always kept. Cached principals for the old and new email
are evicted so the next request sees the change.

Returns:
  - *Person: The updated person
  - error: UNAUTHORIZED, FORBIDDEN, NOT_FOUND, VALIDATION_ERROR, DATA_VIOLATION
*/
func (service *Service) Update(ctx context.Context, kind Kind, id int64, input Input, actor *sec.SecurityContext) (*Person, error) {
	if actor == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	isAdmin := actor.HasAnyRole(sec.RoleAdmin)
	if !isAdmin && actor.UserID != id {
		return nil, apperr.Forbidden("Access denied")
	}

	existing, err := service.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	input = normalise(input)

	validator := validateInput(input)
	roles := existing.Roles
	if isAdmin && input.Roles != nil {
		requested, err := sec.RoleSetFromCodes(input.Roles...)
		validator.Custom(FieldRoles, err != nil, "Unknown role code")
		roles = requested.With(kind.Role())
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.checkUnique(ctx, input, id); err != nil {
		return nil, err
	}

	updated := *existing
	updated.Name = input.Name
	updated.CPF = input.CPF
	updated.Email = input.Email
	updated.Roles = roles

	if input.Password != "" {
		hash, err := service.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("person_hash_password_failed: %w", err)
		}
		updated.PasswordHash = hash
	}

	if err := service.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, err
	}

	service.invalidate(ctx, existing.Email, updated.Email)
	service.logger.InfoContext(ctx, "person_updated",
		slog.Int64("person_id", id),
		slog.Int64("actor_id", actor.UserID),
	)
	return &updated, nil
}

// Delete removes a person who is not referenced by any ticket.
func (service *Service) Delete(ctx context.Context, kind Kind, id int64) error {
	existing, err := service.Get(ctx, kind, id)
	if err != nil {
		return err
	}

	count, err := service.tickets.CountByPerson(ctx, id)
	if err != nil {
		return fmt.Errorf("person_count_tickets_failed: %w", err)
	}
	if count > 0 {
		return apperr.DataViolation(fmt.Sprintf("%s has service orders and cannot be deleted!", kind.Label()))
	}

	if err := service.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return notFound(id)
		}
		return err
	}

	service.invalidate(ctx, existing.Email)
	service.logger.WarnContext(ctx, "person_deleted", slog.Int64("person_id", id))
	return nil
}

// checkUnique rejects a CPF or email held by anyone other than self.
func (service *Service) checkUnique(ctx context.Context, input Input, self int64) error {
	holder, err := service.repo.FindByCPF(ctx, input.CPF)
	if err == nil && holder.ID != self {
		return apperr.DataViolation(MsgCPFTaken)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	holder, err = service.repo.FindByEmail(ctx, input.Email)
	if err == nil && holder.ID != self {
		return apperr.DataViolation(MsgEmailTaken)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func (service *Service) invalidate(ctx context.Context, identities ...string) {
	if service.invalidator != nil {
		service.invalidator.Invalidate(ctx, identities...)
	}
}

func normalise(input Input) Input {
	input.Name = textnorm.Name(input.Name)
	input.Email = textnorm.Email(input.Email)
	if validate.ValidCPF(input.CPF) {
		input.CPF = textnorm.Digits(input.CPF)
	}
	return input
}

func validateInput(input Input) *validate.Validator {
	validator := &validate.Validator{}

	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, maxNameLength)

	validator.Required(FieldCPF, input.CPF)
	if input.CPF != "" {
		validator.CPF(FieldCPF, input.CPF)
	}

	validator.Required(FieldEmail, input.Email)
	if input.Email != "" {
		validator.Email(FieldEmail, input.Email)
	}

	validator.MaxBytes(FieldPassword, input.Password, sec.MaxSecretBytes)

	return validator
}
