// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ticket

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/helpdesk/internal/platform/middleware"
	requestutil "github.com/taibuivan/helpdesk/internal/platform/request"
	"github.com/taibuivan/helpdesk/internal/platform/respond"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/pkg/date"
	"github.com/taibuivan/helpdesk/pkg/slice"
)

type ticketRequest struct {
	Priority     *int   `json:"prioridade"`
	Status       *int   `json:"status"`
	Title        string `json:"titulo"`
	Notes        string `json:"observacoes"`
	TechnicianID *int64 `json:"tecnicoId"`
	ClientID     *int64 `json:"clienteId"`
}

func (body ticketRequest) input() Input {
	return Input(body)
}

type ticketResponse struct {
	ID             int64      `json:"id"`
	OpenedAt       date.Date  `json:"dataAbertura"`
	ClosedAt       *date.Date `json:"dataFechamento"`
	Priority       int        `json:"prioridade"`
	PriorityName   string     `json:"nomePrioridade"`
	Status         int        `json:"status"`
	StatusName     string     `json:"nomeStatus"`
	Title          string     `json:"titulo"`
	Notes          string     `json:"observacoes"`
	TechnicianID   int64      `json:"tecnicoId"`
	TechnicianName string     `json:"nomeTecnico"`
	ClientID       int64      `json:"clienteId"`
	ClientName     string     `json:"nomeCliente"`
}

func toResponse(ticket *Ticket) ticketResponse {
	response := ticketResponse{
		ID:             ticket.ID,
		OpenedAt:       ticket.OpenedAt,
		Priority:       ticket.Priority.Code(),
		PriorityName:   ticket.Priority.Description(),
		Status:         ticket.Status.Code(),
		StatusName:     ticket.Status.Description(),
		Title:          ticket.Title,
		Notes:          ticket.Notes,
		TechnicianID:   ticket.TechnicianID,
		TechnicianName: ticket.TechnicianName,
		ClientID:       ticket.ClientID,
		ClientName:     ticket.ClientName,
	}
	if !ticket.ClosedAt.IsZero() {
		closedAt := ticket.ClosedAt
		response.ClosedAt = &closedAt
	}
	return response
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.With(middleware.RequireAuth).Get("/{id}", handler.get)
	router.With(middleware.RequireRole(sec.RoleCliente)).Post("/", handler.create)

	// Staff
	router.Group(func(staffRoute chi.Router) {
		staffRoute.Use(middleware.RequireRole(sec.RoleAdmin, sec.RoleTecnico))

		staffRoute.Get("/", handler.list)
		staffRoute.Put("/{id}", handler.update)

		// Admin strict only
		staffRoute.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	tickets, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slice.Map(tickets, toResponse))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toResponse(ticket))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredSecurity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body ticketRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.Create(request.Context(), body.input(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, fmt.Sprintf("/chamados/%d", ticket.ID))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body ticketRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.Update(request.Context(), id, body.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toResponse(ticket))
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
