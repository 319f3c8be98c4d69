package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agence-judiciaire/aje-backend/api/middleware"
	"github.com/agence-judiciaire/aje-backend/api/responses"
	"github.com/agence-judiciaire/aje-backend/api/validators"
	emploisvc "github.com/agence-judiciaire/aje-backend/internal/emplois"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

// ApplyToOffre receives a public application against a published offer.
func ApplyToOffre(svc *emploisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offreID, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input emploisvc.CandidatureInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Apply(r.Context(), offreID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, row)
	}
}

// ListCandidatures serves the admin applications listing, optionally
// filtered by offer and statut.
func ListCandidatures(svc *emploisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offreID, err := validators.ParseQueryUUID(r, "offre_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), emploisvc.ListInput{
			OffreID: offreID,
			Statut:  enums.StatutDemande(strings.TrimSpace(r.URL.Query().Get("statut"))),
			Limit:   limit,
			Offset:  offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// GetCandidature returns one application.
func GetCandidature(svc *emploisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		row, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, row)
	}
}

// UpdateCandidatureStatut moves an application through the pipeline.
func UpdateCandidatureStatut(svc *emploisvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload statutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		statut, err := enums.ParseStatutDemande(strings.TrimSpace(payload.Statut))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid statut"))
			return
		}

		if err := svc.UpdateStatut(r.Context(), middleware.ActorUUIDFromContext(r.Context()), id, statut); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
