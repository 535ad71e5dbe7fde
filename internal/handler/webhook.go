package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/courtflow/intake-server-go/internal/model"
	"github.com/courtflow/intake-server-go/internal/telegram"
)

// IntakeDispatcher routes one inbound chat event into the intake state
// machine.
type IntakeDispatcher interface {
	HandleUpdate(ctx context.Context, chatID int64, text string, doc *model.InboundDocument)
}

type WebhookHandler struct {
	intake IntakeDispatcher
}

func NewWebhookHandler(intake IntakeDispatcher) *WebhookHandler {
	return &WebhookHandler{intake: intake}
}

// Webhook receives Telegram update envelopes. The gateway's delivery
// contract is a 200-class acknowledgement no matter what: application-level
// problems are handled inside the state machine and never redelivered.
func (h *WebhookHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Warn().Err(err).Msg("invalid webhook body")
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	msg := update.Message
	if msg == nil || msg.ChatID() == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	chatID := msg.ChatID()
	var doc *model.InboundDocument
	if msg.Document != nil {
		doc = &model.InboundDocument{
			FileID:   msg.Document.FileID,
			FileName: msg.Document.FileName,
		}
	}

	log.Info().
		Int64("chatId", chatID).
		Str("text", truncate(msg.Text, 50)).
		Bool("hasDocument", doc != nil).
		Msg("received webhook update")

	// Intake outlives the request: the gateway gives up on slow webhooks,
	// and case submission has its own budget far beyond any request
	// timeout. Detaching keeps request-scoped values for logging while
	// dropping the cancelation.
	ctx := context.WithoutCancel(r.Context())
	go h.intake.HandleUpdate(ctx, chatID, msg.Text, doc)

	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Health answers the bot liveness probe.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "OK",
		"message": "Telegram bot is running",
	})
}
