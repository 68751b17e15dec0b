package router

import (
	"github.com/thesrcielos/guildmaster/websocket/message"
	"github.com/thesrcielos/guildmaster/websocket/state"
	"go.uber.org/zap"
)

type HandlerFunc func(c *state.Client, msg message.Message)

type Router struct {
	handlers map[string]HandlerFunc
	logger   *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{handlers: make(map[string]HandlerFunc), logger: logger}
}

func (r *Router) Handle(msgType string, h HandlerFunc) {
	r.handlers[msgType] = h
}

// RouteMessage dispatches msg and reports whether a handler took it.
func (r *Router) RouteMessage(c *state.Client, msg message.Message) bool {
	handler, ok := r.handlers[msg.Type]
	if !ok {
		r.logger.Warn("unknown message type", zap.String("type", msg.Type))
		return false
	}
	handler(c, msg)
	return true
}
