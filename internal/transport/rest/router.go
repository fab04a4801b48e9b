package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/employee-directory/internal/employee"
	"github.com/frahmantamala/employee-directory/internal/skill"
	"github.com/frahmantamala/employee-directory/internal/transport/middleware"
	"github.com/frahmantamala/employee-directory/internal/transport/swagger"
	"github.com/frahmantamala/employee-directory/internal/workstation"
	"github.com/go-chi/chi"
)

const APIPrefix = "/api/v1"

// Routes carries everything RegisterAllRoutes mounts. Nil handlers leave
// their routes out.
type Routes struct {
	Health      *HealthHandler
	Employee    *employee.Handler
	Workstation *workstation.Handler
	Skill       *skill.Handler

	// Validator checks /api/v1 requests against the contract when set.
	Validator   *middleware.OpenAPIValidator
	OpenAPIPath string
	MediaRoot   string
	MediaPrefix string
}

func RegisterAllRoutes(router *chi.Mux, routes Routes, logger *slog.Logger) {
	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	if routes.OpenAPIPath != "" {
		router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, routes.OpenAPIPath)
		})
		router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))
	}

	if routes.MediaRoot != "" {
		prefix := routes.MediaPrefix
		if prefix == "" {
			prefix = "/media/"
		}
		router.Handle(prefix+"*", http.StripPrefix(prefix, http.FileServer(http.Dir(routes.MediaRoot))))
	}

	router.Route(APIPrefix, func(r chi.Router) {
		if routes.Health != nil {
			r.Get("/health", routes.Health.healthCheckHandler)
			r.Get("/ping", routes.Health.pingHandler)
		}

		r.Group(func(api chi.Router) {
			if routes.Validator != nil {
				api.Use(routes.Validator.Middleware)
			}

			if h := routes.Employee; h != nil {
				api.Route("/employees", func(er chi.Router) {
					er.Get("/", h.ListEmployees)
					er.Post("/", h.CreateEmployee)
					er.Get("/recent", h.ListRecent)
					er.Get("/{id}", h.GetEmployee)
					er.Put("/{id}", h.UpdateEmployee)
					er.Delete("/{id}", h.DeleteEmployee)

					er.Put("/{id}/workstation", h.AssignWorkstation)
					er.Post("/{id}/placement-check", h.CheckPlacement)

					er.Put("/{id}/skills/{skillID}", h.SetSkillLevel)
					er.Delete("/{id}/skills/{skillID}", h.RemoveSkill)

					er.Post("/{id}/images", h.AddImage)
					er.Delete("/{id}/images/{imageID}", h.DeleteImage)
				})
			}

			if h := routes.Workstation; h != nil {
				api.Route("/workstations", func(wr chi.Router) {
					wr.Get("/", h.ListWorkstations)
					wr.Post("/", h.CreateWorkstation)
					wr.Get("/{id}", h.GetWorkstation)
					wr.Put("/{id}", h.UpdateWorkstation)
					wr.Delete("/{id}", h.DeleteWorkstation)
				})
			}

			if h := routes.Skill; h != nil {
				api.Route("/skills", func(sr chi.Router) {
					sr.Get("/", h.ListSkills)
					sr.Post("/", h.CreateSkill)
					sr.Get("/{id}", h.GetSkill)
					sr.Put("/{id}", h.UpdateSkill)
					sr.Delete("/{id}", h.DeleteSkill)
				})
			}
		})
	})
}
