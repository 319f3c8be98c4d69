// Package routes assembles the HTTP router for the main API service.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agence-judiciaire/aje-backend/api/controllers"
	"github.com/agence-judiciaire/aje-backend/api/middleware"
	analyticsvc "github.com/agence-judiciaire/aje-backend/internal/analytics"
	auditsvc "github.com/agence-judiciaire/aje-backend/internal/audit"
	authsvc "github.com/agence-judiciaire/aje-backend/internal/auth"
	emploisvc "github.com/agence-judiciaire/aje-backend/internal/emplois"
	formsvc "github.com/agence-judiciaire/aje-backend/internal/forms"
	mediasvc "github.com/agence-judiciaire/aje-backend/internal/media"
	settingsvc "github.com/agence-judiciaire/aje-backend/internal/settings"
	"github.com/agence-judiciaire/aje-backend/pkg/auth/session"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
	"github.com/agence-judiciaire/aje-backend/pkg/metrics"
	redisclient "github.com/agence-judiciaire/aje-backend/pkg/redis"
)

// Params bundles everything the router mounts.
type Params struct {
	Config      *config.Config
	Logger      *logger.Logger
	HTTPMetrics *metrics.HTTPMetrics
	DB          *db.Client
	Redis       *redisclient.Client
	Sessions    session.AccessSessionChecker

	Content   *controllers.ContentControllers
	Auth      authsvc.Service
	Forms     *formsvc.Service
	Emplois   *emploisvc.Service
	Media     mediasvc.Service
	Settings  *settingsvc.Service
	Analytics *analyticsvc.Service
	Audit     *auditsvc.Service
}

// NewRouter builds the chi router: public reads, intake forms, the auth
// endpoints, and the admin back office behind the session gate.
func NewRouter(p Params) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Logging(logg, p.HTTPMetrics))

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(p.DB))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public/v1", func(r chi.Router) {
		p.Content.MountPublic(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.IPRateLimit("intake", p.Redis,
				cfg.AuthRateLimit.IntakeIPLimit, cfg.AuthRateLimit.IntakeWindow, logg))

			r.Post("/forms/contact", controllers.SubmitContact(p.Forms, logg))
			r.Post("/forms/avis-juridique", controllers.SubmitAvis(p.Forms, logg))
			r.Post("/forms/signalement", controllers.SubmitSignalement(p.Forms, logg))
			r.Post("/forms/accreditation-presse", controllers.SubmitPresse(p.Forms, logg))
			r.Post("/forms/newsletter", controllers.SubscribeNewsletter(p.Forms, logg))
			r.Post("/offres-emploi/{id}/candidatures", controllers.ApplyToOffre(p.Emplois, logg))
		})
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(p.Auth, logg))
		r.Post("/refresh", controllers.Refresh(p.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))
			r.Post("/logout", controllers.Logout(p.Auth, logg))
			r.Get("/me", controllers.Me(p.Auth, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		// Content, media and intake handling are open to every operator
		// role; the global surfaces below require admin.
		p.Content.MountAdmin(r)

		r.Route("/medias", func(r chi.Router) {
			r.Get("/", controllers.ListMedia(p.Media, logg))
			r.Post("/presign", controllers.PresignMediaUpload(p.Media, logg))
			r.Get("/{id}", controllers.GetMedia(p.Media, logg))
			r.Get("/{id}/url", controllers.MediaReadURL(p.Media, logg))
			r.Delete("/{id}", controllers.DeleteMedia(p.Media, logg))
		})

		r.Route("/demandes", func(r chi.Router) {
			mountIntake := func(segment string, form enums.FormType) {
				r.Route("/"+segment, func(r chi.Router) {
					r.Get("/", controllers.ListSubmissions(p.Forms, form, logg))
					r.Put("/{id}/statut", controllers.UpdateSubmissionStatut(p.Forms, form, logg))
				})
			}
			mountIntake("contact", enums.FormTypeContact)
			mountIntake("avis-juridique", enums.FormTypeAvisJuridique)
			mountIntake("signalements", enums.FormTypeSignalement)
			mountIntake("accreditations-presse", enums.FormTypePresse)
			r.Get("/newsletter", controllers.ListSubmissions(p.Forms, enums.FormTypeNewsletter, logg))
		})

		r.Route("/candidatures", func(r chi.Router) {
			r.Get("/", controllers.ListCandidatures(p.Emplois, logg))
			r.Get("/{id}", controllers.GetCandidature(p.Emplois, logg))
			r.Put("/{id}/statut", controllers.UpdateCandidatureStatut(p.Emplois, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin, logg))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", controllers.ListSettings(p.Settings, logg))
				r.Get("/{cle}", controllers.GetSetting(p.Settings, logg))
				r.Put("/{cle}", controllers.UpdateSetting(p.Settings, logg))
			})
			r.Get("/analytics/dashboard", controllers.AnalyticsDashboard(p.Analytics, logg))
			r.Get("/audit-logs", controllers.ListAuditLog(p.Audit, logg))
		})
	})

	return r
}
