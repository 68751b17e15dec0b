package transport

import (
	"errors"

	"github.com/thesrcielos/guildmaster/websocket/state"
	"go.uber.org/zap"
)

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var errNoConn = errors.New("client has no connection")

func Send(c *state.Client, msg OutgoingMessage) error {
	if c == nil || c.Conn == nil {
		return errNoConn
	}

	c.ConnMu.Lock()
	defer c.ConnMu.Unlock()

	return c.Conn.WriteJSON(msg)
}

// Broadcast sends msg to every registered client and returns how many
// writes succeeded.
func Broadcast(reg *state.Registry, msg OutgoingMessage, logger *zap.Logger) int {
	sent := 0
	for _, c := range reg.All() {
		if err := Send(c, msg); err != nil {
			logger.Warn("error broadcasting message",
				zap.String("client", c.ID),
				zap.String("type", msg.Type),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}
