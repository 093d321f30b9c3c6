package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"animal-quiz-service/internal/app"
	"animal-quiz-service/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RESTHandler exposes the quiz as plain JSON endpoints for shells that do not hold a socket.
type RESTHandler struct {
	service *app.QuizService
	logger  *zap.Logger
}

func NewRESTHandler(service *app.QuizService, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{service: service, logger: logger}
}

// Mount registers the session and stats routes under r.
func (h *RESTHandler) Mount(r chi.Router) {
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.start)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.current)
			r.Delete("/", h.end)
			r.Post("/answers", h.answer)
			r.Post("/retake", h.retake)
		})
	})
	r.Get("/stats", h.stats)
}

func (h *RESTHandler) start(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Start(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, progress)
}

func (h *RESTHandler) current(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Current(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *RESTHandler) answer(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid answer payload")
		return
	}
	category, err := decodeAnswer(raw)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCategory) {
			h.fail(w, err)
			return
		}
		respondError(w, http.StatusBadRequest, "invalid answer payload")
		return
	}
	progress, err := h.service.Answer(r.Context(), chi.URLParam(r, "sessionID"), category)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *RESTHandler) retake(w http.ResponseWriter, r *http.Request) {
	progress, err := h.service.Retake(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

func (h *RESTHandler) end(w http.ResponseWriter, r *http.Request) {
	if err := h.service.End(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *RESTHandler) stats(w http.ResponseWriter, r *http.Request) {
	tally, err := h.service.Stats(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tally)
}

func (h *RESTHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("quiz request failed", zap.Error(err))
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

type errResp struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, errResp{Error: msg})
}
