// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

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

// personRequest is the write shape of a person. Perfis is a pointer so an
// absent field can be told apart from an empty list.
type personRequest struct {
	Name     string `json:"nome"`
	CPF      string `json:"cpf"`
	Email    string `json:"email"`
	Password string `json:"senha"`
	Roles    *[]int `json:"perfis"`
}

func (body personRequest) input() Input {
	input := Input{
		Name:     body.Name,
		CPF:      body.CPF,
		Email:    body.Email,
		Password: body.Password,
	}
	if body.Roles != nil {
		input.Roles = append([]int{}, (*body.Roles)...)
	}
	return input
}

// personResponse never carries the password hash.
type personResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Roles     []int     `json:"perfis"`
	CreatedAt date.Date `json:"dataCriacao"`
}

func toResponse(person *Person) personResponse {
	return personResponse{
		ID:        person.ID,
		Name:      person.Name,
		CPF:       person.CPF,
		Email:     person.Email,
		Roles:     person.Roles.Codes(),
		CreatedAt: person.CreatedAt,
	}
}

// Handler serves the collection of one person kind.
type Handler struct {
	service *Service
	kind    Kind
}

// NewClientHandler serves /clientes.
func NewClientHandler(service *Service) *Handler {
	return &Handler{service: service, kind: KindClient}
}

// NewTechnicianHandler serves /tecnicos.
func NewTechnicianHandler(service *Service) *Handler {
	return &Handler{service: service, kind: KindTechnician}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Post("/", handler.create)

	// Authenticated
	router.Group(func(authRoute chi.Router) {
		authRoute.Use(middleware.RequireAuth)

		authRoute.Get("/{id}", handler.get)
		if handler.kind == KindClient {
			authRoute.Put("/{id}", handler.update)
		}
	})

	if handler.kind == KindClient {
		router.With(middleware.RequireRole(sec.RoleAdmin, sec.RoleTecnico)).Get("/", handler.list)
		router.With(middleware.RequireRole(sec.RoleAdmin)).Delete("/{id}", handler.delete)
		return
	}

	// Admin only
	router.Group(func(adminRoute chi.Router) {
		adminRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		adminRoute.Get("/", handler.list)
		adminRoute.Put("/{id}", handler.update)
		adminRoute.Delete("/{id}", handler.delete)
	})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	persons, err := handler.service.List(request.Context(), handler.kind)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slice.Map(persons, toResponse))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.Get(request.Context(), handler.kind, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toResponse(person))
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var body personRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.Create(request.Context(), handler.kind, body.input())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, fmt.Sprintf("%s/%d", handler.kind.Collection(), person.ID))
}

func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	actor, err := requestutil.RequiredSecurity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body personRequest
	if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.service.Update(request.Context(), handler.kind, id, body.input(), actor)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, toResponse(person))
}

func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), handler.kind, id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
