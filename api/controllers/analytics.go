package controllers

import (
	"net/http"

	"github.com/agence-judiciaire/aje-backend/api/responses"
	analyticsvc "github.com/agence-judiciaire/aje-backend/internal/analytics"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

// AnalyticsDashboard returns the admin aggregates in one payload.
func AnalyticsDashboard(svc *analyticsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}
