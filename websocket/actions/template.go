package actions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"github.com/thesrcielos/guildmaster/websocket/message"
	"github.com/thesrcielos/guildmaster/websocket/state"
	"github.com/thesrcielos/guildmaster/websocket/transport"
	"go.uber.org/zap"
)

const lookupTimeout = 5 * time.Second

type TemplateReader interface {
	Get(ctx context.Context, name string) (*tilemap.Template, error)
}

// HandleTemplateGet answers TEMPLATE_GET with the named template.
func HandleTemplateGet(templates TemplateReader, logger *zap.Logger) func(*state.Client, message.Message) {
	return func(c *state.Client, msg message.Message) {
		var payload message.TemplateGetPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			SendError(c, msg.Type, "invalid payload", logger)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		t, err := templates.Get(ctx, payload.Name)
		if err != nil {
			text := "error loading template"
			var appErr *apperrors.AppError
			if errors.As(err, &appErr) {
				text = appErr.Message
			}
			SendError(c, msg.Type, text, logger)
			return
		}

		reply := transport.OutgoingMessage{Type: message.TypeTemplate, Payload: t}
		if err := transport.Send(c, reply); err != nil {
			logger.Warn("error sending template", zap.String("client", c.ID), zap.Error(err))
		}
	}
}

func SendError(c *state.Client, request, text string, logger *zap.Logger) {
	reply := transport.OutgoingMessage{
		Type: message.TypeError,
		Payload: message.ErrorPayload{
			Request: request,
			Message: text,
		},
	}
	if err := transport.Send(c, reply); err != nil {
		logger.Warn("error sending error reply", zap.String("client", c.ID), zap.Error(err))
	}
}
