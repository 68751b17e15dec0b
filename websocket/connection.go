package websocket

import (
	"encoding/json"

	"github.com/thesrcielos/guildmaster/websocket/actions"
	"github.com/thesrcielos/guildmaster/websocket/message"
	"github.com/thesrcielos/guildmaster/websocket/state"
	"go.uber.org/zap"
)

func (h *FeedHandler) listenClientMessages(c *state.Client) {
	defer func() {
		h.Logger.Info("feed client disconnected", zap.String("client", c.ID))
		h.Clients.Unregister(c.ID)
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			h.Logger.Debug("error reading message", zap.String("client", c.ID), zap.Error(err))
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.Logger.Warn("error decoding message", zap.String("client", c.ID), zap.Error(err))
			actions.SendError(c, "", "malformed message", h.Logger)
			continue
		}

		if !h.Router.RouteMessage(c, msg) {
			actions.SendError(c, msg.Type, "unknown message type", h.Logger)
		}
	}
}
