// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package person manages the two kinds of people known to the helpdesk:
// clients, who open tickets, and technicians, who work on them.
//
// # Architecture
//
// Both kinds live in one store and share email/CPF uniqueness. The package
// also provides the [Directory] that the authentication and authorization
// gates use to resolve a login identity to its current roles.
package person

import (
	"fmt"

	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/pkg/date"
)

// Kind discriminates clients from technicians.
type Kind int16

const (
	KindClient     Kind = 0
	KindTechnician Kind = 1
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindClient || k == KindTechnician
}

// Role returns the role every person of this kind holds.
func (k Kind) Role() sec.Role {
	if k == KindTechnician {
		return sec.RoleTecnico
	}
	return sec.RoleCliente
}

// Label is the human-readable singular name used in messages.
func (k Kind) Label() string {
	if k == KindTechnician {
		return "Technician"
	}
	return "Client"
}

// Collection is the REST collection path of this kind.
func (k Kind) Collection() string {
	if k == KindTechnician {
		return "/tecnicos"
	}
	return "/clientes"
}

func (k Kind) String() string {
	switch k {
	case KindClient:
		return "CLIENT"
	case KindTechnician:
		return "TECHNICIAN"
	}
	return fmt.Sprintf("Kind(%d)", int16(k))
}

// Person is a client or a technician.
//
// Roles is an immutable snapshot; replacing it is the only way to change a
// person's roles, and the change only becomes visible once the person is
// written back through [Repository.Update].
type Person struct {
	ID           int64
	Kind         Kind
	Name         string
	CPF          string
	Email        string
	PasswordHash string
	Roles        sec.RoleSet
	CreatedAt    date.Date
}

// Wire and validation field names.
const (
	FieldName     = "nome"
	FieldCPF      = "cpf"
	FieldEmail    = "email"
	FieldPassword = "senha"
	FieldRoles    = "perfis"
)

// Client-facing messages.
const (
	MsgCPFTaken   = "CPF already registered in the system"
	MsgEmailTaken = "E-mail already registered in the system"
)

// maxNameLength bounds the name column.
const maxNameLength = 100
