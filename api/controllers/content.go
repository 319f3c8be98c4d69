// Package controllers wires the HTTP surface onto the domain services.
// Handlers stay thin: decode, call the service, write the envelope.
package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agence-judiciaire/aje-backend/api/middleware"
	"github.com/agence-judiciaire/aje-backend/api/responses"
	"github.com/agence-judiciaire/aje-backend/api/validators"
	"github.com/agence-judiciaire/aje-backend/internal/content"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

type contentRow[M any] interface {
	content.Row
	*M
}

// contentPayload is the request shape shared by create and update. Every
// field is optional at the type level; validate(create) enforces presence
// for creates and well-formedness for both.
type contentPayload[M any, PT contentRow[M]] interface {
	validate(create bool) error
	apply(row PT)
}

// contentHandlers serves the full management surface of one resource.
type contentHandlers[M any, PT contentRow[M], R contentPayload[M, PT]] struct {
	svc  *content.Service[M, PT]
	logg *logger.Logger
}

func newContentHandlers[M any, PT contentRow[M], R contentPayload[M, PT]](svc *content.Service[M, PT], logg *logger.Logger) *contentHandlers[M, PT, R] {
	return &contentHandlers[M, PT, R]{svc: svc, logg: logg}
}

// MountAdmin registers the management routes on the given subrouter.
func (h *contentHandlers[M, PT, R]) MountAdmin(r chi.Router) {
	r.Get("/", h.list(content.ScopeAdmin))
	r.Post("/", h.create)
	r.Post("/reorder", h.reorder)
	r.Get("/{id}", h.get(content.ScopeAdmin))
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/toggle-publish", h.togglePublish)
	r.Post("/{id}/move", h.move)
}

// MountPublic registers the read-only routes, drafts excluded.
func (h *contentHandlers[M, PT, R]) MountPublic(r chi.Router) {
	r.Get("/", h.list(content.ScopePublic))
	r.Get("/{id}", h.get(content.ScopePublic))
}

func (h *contentHandlers[M, PT, R]) list(scope content.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}

		rows, err := h.svc.List(r.Context(), content.ListInput{
			Scope:     scope,
			Query:     strings.TrimSpace(r.URL.Query().Get("q")),
			Categorie: strings.TrimSpace(r.URL.Query().Get("categorie")),
			Limit:     limit,
			Offset:    offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func (h *contentHandlers[M, PT, R]) get(scope content.Scope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}

		row, err := h.svc.Get(r.Context(), id, scope)
		if err != nil {
			responses.WriteError(r.Context(), h.logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}

func (h *contentHandlers[M, PT, R]) create(w http.ResponseWriter, r *http.Request) {
	var payload R
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	if err := payload.validate(true); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	row := PT(new(M))
	row.SetPublished(h.svc.Definition().DefaultPublished)
	payload.apply(row)

	created, err := h.svc.Create(r.Context(), middleware.ActorUUIDFromContext(r.Context()), row)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteSuccessStatus(w, http.StatusCreated, created)
}

func (h *contentHandlers[M, PT, R]) update(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	var payload R
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}
	if err := payload.validate(false); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), middleware.ActorUUIDFromContext(r.Context()), id, func(row PT) {
		payload.apply(row)
	})
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteSuccess(w, updated)
}

func (h *contentHandlers[M, PT, R]) delete(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	if err := h.svc.Delete(r.Context(), middleware.ActorUUIDFromContext(r.Context()), id); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteNoContent(w)
}

func (h *contentHandlers[M, PT, R]) togglePublish(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	row, err := h.svc.TogglePublished(r.Context(), middleware.ActorUUIDFromContext(r.Context()), id)
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteSuccess(w, row)
}

type reorderRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *contentHandlers[M, PT, R]) reorder(w http.ResponseWriter, r *http.Request) {
	var payload reorderRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	if err := h.svc.Reorder(r.Context(), middleware.ActorUUIDFromContext(r.Context()), payload.IDs); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteNoContent(w)
}

type moveRequest struct {
	Direction string `json:"direction"`
}

func (h *contentHandlers[M, PT, R]) move(w http.ResponseWriter, r *http.Request) {
	id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
	if err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	var payload moveRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	direction := content.Direction(strings.TrimSpace(payload.Direction))
	if err := h.svc.Move(r.Context(), middleware.ActorUUIDFromContext(r.Context()), id, direction); err != nil {
		responses.WriteError(r.Context(), h.logg, w, err)
		return
	}

	responses.WriteNoContent(w)
}

// missingFields builds the VALIDATION error for absent required fields.
// The map value marks the field as missing.
func missingFields(missing map[string]bool) error {
	details := make(map[string]any)
	for field, absent := range missing {
		if absent {
			details[field] = "required"
		}
	}
	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "missing required fields").WithDetails(details)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
