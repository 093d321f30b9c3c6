package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"animal-quiz-service/internal/app"
	"animal-quiz-service/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WSHandler runs one quiz session per websocket connection.
type WSHandler struct {
	service  *app.QuizService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Category *domain.Category `json:"category"`
}

// decodeAnswer rejects payloads without a category so a missing field never scores as cat.
func decodeAnswer(raw []byte) (domain.Category, error) {
	var payload answerPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return 0, err
	}
	if payload.Category == nil {
		return 0, errMissingCategory
	}
	return *payload.Category, nil
}

var errMissingCategory = errors.New("missing category")

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and drives a fresh quiz session over them.
// The session is dropped when the connection closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	progress, err := h.service.Start(ctx)
	if err != nil {
		h.logger.Error("start quiz session", zap.Error(err))
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	sessionID := progress.SessionID
	defer func() {
		if err := h.service.End(ctx, sessionID); err != nil {
			h.logger.Warn("end quiz session", zap.String("session", sessionID), zap.Error(err))
		}
	}()

	log := h.logger.With(zap.String("session", sessionID))
	if err := conn.WriteJSON(progressMessage(progress)); err != nil {
		log.Debug("ws write error", zap.Error(err))
		return
	}

	// One reader, one writer: replies are written from this goroutine only.
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("ws read error", zap.Error(err))
			}
			return
		}

		reply := h.handle(r, sessionID, inbound, log)
		if err := conn.WriteJSON(reply); err != nil {
			log.Debug("ws write error", zap.Error(err))
			return
		}
	}
}

func (h *WSHandler) handle(r *http.Request, sessionID string, inbound inboundMessage, log *zap.Logger) outboundMessage {
	var (
		progress app.Progress
		category domain.Category
		err      error
	)
	switch inbound.Type {
	case "answer":
		category, err = decodeAnswer(inbound.Payload)
		if errors.Is(err, domain.ErrInvalidCategory) {
			return errorMessage(err)
		}
		if err != nil {
			return outboundMessage{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
		}
		progress, err = h.service.Answer(r.Context(), sessionID, category)
	case "retake":
		progress, err = h.service.Retake(r.Context(), sessionID)
	case "current":
		progress, err = h.service.Current(r.Context(), sessionID)
	default:
		return outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
	}
	if err != nil {
		if !app.IsClientError(err) {
			log.Error("quiz operation failed", zap.String("type", inbound.Type), zap.Error(err))
		}
		return errorMessage(err)
	}
	return progressMessage(progress)
}

func progressMessage(progress app.Progress) outboundMessage {
	if progress.Finished {
		return outboundMessage{Type: "result", Payload: progress.Result}
	}
	return outboundMessage{Type: "question", Payload: progress.Question}
}

func errorMessage(err error) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: err.Error()}}
}
