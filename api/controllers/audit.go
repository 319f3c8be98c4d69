package controllers

import (
	"net/http"
	"strings"

	"github.com/agence-judiciaire/aje-backend/api/responses"
	"github.com/agence-judiciaire/aje-backend/api/validators"
	auditsvc "github.com/agence-judiciaire/aje-backend/internal/audit"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/agence-judiciaire/aje-backend/pkg/pagination"
)

// ListAuditLog pages through the audit trail, newest first.
func ListAuditLog(svc *auditsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 200)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), auditsvc.ListQuery{
			Table:  strings.TrimSpace(r.URL.Query().Get("table")),
			Action: enums.AuditAction(strings.TrimSpace(r.URL.Query().Get("action"))),
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
