// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ticket manages service orders: work a client asks for and a
// technician carries out.
package ticket

import (
	"fmt"

	"github.com/taibuivan/helpdesk/pkg/date"
)

// Priority ranks how urgent a ticket is.
type Priority int16

const (
	PriorityLow    Priority = 0
	PriorityMedium Priority = 1
	PriorityHigh   Priority = 2
)

var priorityDescriptions = map[Priority]string{
	PriorityLow:    "BAIXA",
	PriorityMedium: "MEDIA",
	PriorityHigh:   "ALTA",
}

// Code returns the numeric code used on the wire and in storage.
func (p Priority) Code() int { return int(p) }

// Description returns the wire name, e.g. "ALTA".
func (p Priority) Description() string { return priorityDescriptions[p] }

func (p Priority) Valid() bool {
	_, ok := priorityDescriptions[p]
	return ok
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int16(p))
	}
	return p.Description()
}

// Status is where a ticket is in its lifecycle.
type Status int16

const (
	StatusOpen       Status = 0
	StatusInProgress Status = 1
	StatusClosed     Status = 2
)

var statusDescriptions = map[Status]string{
	StatusOpen:       "ABERTO",
	StatusInProgress: "ANDAMENTO",
	StatusClosed:     "ENCERRADO",
}

// Code returns the numeric code used on the wire and in storage.
func (s Status) Code() int { return int(s) }

// Description returns the wire name, e.g. "ENCERRADO".
func (s Status) Description() string { return statusDescriptions[s] }

func (s Status) Valid() bool {
	_, ok := statusDescriptions[s]
	return ok
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int16(s))
	}
	return s.Description()
}

// Ticket is a service order.
//
// ClosedAt is zero while the ticket is not closed. TechnicianName and
// ClientName are read-side projections filled by the repository.
type Ticket struct {
	ID             int64
	OpenedAt       date.Date
	ClosedAt       date.Date
	Priority       Priority
	Status         Status
	Title          string
	Notes          string
	TechnicianID   int64
	TechnicianName string
	ClientID       int64
	ClientName     string
}

// applyStatus moves the ticket to status and keeps ClosedAt consistent with it.
//
// A ticket entering ENCERRADO is stamped with today; one already closed keeps
// its date; one leaving ENCERRADO loses it.
func (ticket *Ticket) applyStatus(status Status, today date.Date) {
	switch {
	case status == StatusClosed && ticket.ClosedAt.IsZero():
		ticket.ClosedAt = today
	case status != StatusClosed:
		ticket.ClosedAt = date.Date{}
	}
	ticket.Status = status
}

// Wire and validation field names.
const (
	FieldPriority     = "prioridade"
	FieldStatus       = "status"
	FieldTitle        = "titulo"
	FieldNotes        = "observacoes"
	FieldTechnicianID = "tecnicoId"
	FieldClientID     = "clienteId"
)

const maxTitleLength = 255
