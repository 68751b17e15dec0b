package websocket

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/guildmaster/internal/auth"
	"github.com/thesrcielos/guildmaster/internal/mapstore"
	"github.com/thesrcielos/guildmaster/websocket/actions"
	"github.com/thesrcielos/guildmaster/websocket/message"
	"github.com/thesrcielos/guildmaster/websocket/router"
	"github.com/thesrcielos/guildmaster/websocket/state"
	"github.com/thesrcielos/guildmaster/websocket/transport"
	"go.uber.org/zap"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

type DeploySubscriber interface {
	SubscribeDeployed(ctx context.Context, fn func(mapstore.DeployEvent)) error
}

// FeedHandler serves the map feed: deploy notifications out, template
// lookups in.
type FeedHandler struct {
	Secret  string
	Clients *state.Registry
	Router  *router.Router
	Logger  *zap.Logger
}

func NewFeedHandler(secret string, templates actions.TemplateReader, logger *zap.Logger) *FeedHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := router.NewRouter(logger)
	r.Handle(message.TypeTemplateGet, actions.HandleTemplateGet(templates, logger))

	return &FeedHandler{
		Secret:  secret,
		Clients: state.NewRegistry(),
		Router:  r,
		Logger:  logger,
	}
}

func (h *FeedHandler) WebSocketHandler(c echo.Context) error {
	subject, err := auth.ValidateJWT(h.Secret, c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := h.Clients.Register(uuid.NewString(), subject, ws)
	h.Logger.Info("feed client connected",
		zap.String("client", client.ID),
		zap.String("subject", subject))
	go h.listenClientMessages(client)

	return nil
}

// Relay forwards every deploy event from sub to all connected clients until
// ctx is done.
func (h *FeedHandler) Relay(ctx context.Context, sub DeploySubscriber) error {
	return sub.SubscribeDeployed(ctx, func(event mapstore.DeployEvent) {
		sent := transport.Broadcast(h.Clients, actions.DeployedMessage(event), h.Logger)
		h.Logger.Info("deploy event relayed",
			zap.String("batchId", event.BatchID),
			zap.Int("clients", sent))
	})
}
