package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/agence-judiciaire/aje-backend/api/middleware"
	"github.com/agence-judiciaire/aje-backend/api/responses"
	"github.com/agence-judiciaire/aje-backend/api/validators"
	formsvc "github.com/agence-judiciaire/aje-backend/internal/forms"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

// SubmitContact handles the public contact form.
func SubmitContact(svc *formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input formsvc.ContactInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.SubmitContact(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// SubmitAvis handles the legal-opinion request form.
func SubmitAvis(svc *formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input formsvc.AvisInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.SubmitAvis(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// SubmitSignalement handles the irregularity report form.
func SubmitSignalement(svc *formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input formsvc.SignalementInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.SubmitSignalement(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// SubmitPresse handles the press accreditation form.
func SubmitPresse(svc *formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input formsvc.PresseInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.SubmitPresse(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

// SubscribeNewsletter handles the newsletter signup.
func SubscribeNewsletter(svc *formsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input formsvc.NewsletterInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.SubscribeNewsletter(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}

func parseIntakeListInput(r *http.Request) (formsvc.ListInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", 50, 1, 200)
	if err != nil {
		return formsvc.ListInput{}, err
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return formsvc.ListInput{}, err
	}
	return formsvc.ListInput{
		Statut: enums.StatutDemande(strings.TrimSpace(r.URL.Query().Get("statut"))),
		Limit:  limit,
		Offset: offset,
	}, nil
}

// ListSubmissions serves the admin listing for one intake form.
func ListSubmissions(svc *formsvc.Service, form enums.FormType, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, err := parseIntakeListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var rows any
		switch form {
		case enums.FormTypeContact:
			rows, err = svc.ListContacts(r.Context(), input)
		case enums.FormTypeAvisJuridique:
			rows, err = svc.ListAvis(r.Context(), input)
		case enums.FormTypeSignalement:
			rows, err = svc.ListSignalements(r.Context(), input)
		case enums.FormTypePresse:
			rows, err = svc.ListPresse(r.Context(), input)
		case enums.FormTypeNewsletter:
			rows, err = svc.ListNewsletter(r.Context(), input.Limit, input.Offset)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "unknown form type")
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

type statutRequest struct {
	Statut string `json:"statut" validate:"required"`
}

// UpdateSubmissionStatut moves a submission through the handling pipeline.
func UpdateSubmissionStatut(svc *formsvc.Service, form enums.FormType, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.UpdateStatut(r.Context(), middleware.ActorUUIDFromContext(r.Context()), form, id, statut); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
