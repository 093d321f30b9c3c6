package http

import (
	"net/http"
	"time"

	"animal-quiz-service/internal/app"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter wires the health check, the websocket shell and the REST API.
func NewRouter(service *app.QuizService, logger *zap.Logger, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ws", NewWSHandler(service, logger).ServeWS)

	r.Route("/api", func(r chi.Router) {
		// websocket connections are long lived; only the JSON API gets a deadline
		r.Use(middleware.Timeout(15 * time.Second))
		NewRESTHandler(service, logger).Mount(r)
	})
	return r
}
