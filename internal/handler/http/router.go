package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	employeeHandler EmployeeHandler,
	leaveHandler LeaveHandler,
	assistantHandler AssistantHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)
				r.Get("/{id}", employeeHandler.GetByID)
				r.Get("/{id}/balances", leaveHandler.GetBalances)
				r.Get("/{id}/history", leaveHandler.GetHistory)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/types", leaveHandler.ListTypes)
				r.Get("/balances/my", leaveHandler.GetMyBalances)
				r.Get("/history/my", leaveHandler.GetMyHistory)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.CreateRequest)
					r.Get("/{id}", leaveHandler.GetRequest)

					// Approvers only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireApprover)
						r.Post("/{id}/approve", leaveHandler.ApproveRequest)
						r.Post("/{id}/reject", leaveHandler.RejectRequest)
					})
				})
			})

			r.Route("/assistant", func(r chi.Router) {
				r.Post("/summarize", assistantHandler.Summarize)
				r.Post("/command", assistantHandler.Command)
			})
		})
	})

	return r
}
