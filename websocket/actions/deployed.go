package actions

import (
	"github.com/thesrcielos/guildmaster/internal/mapstore"
	"github.com/thesrcielos/guildmaster/websocket/message"
	"github.com/thesrcielos/guildmaster/websocket/transport"
)

func DeployedMessage(event mapstore.DeployEvent) transport.OutgoingMessage {
	return transport.OutgoingMessage{
		Type:    message.TypeMapsDeployed,
		Payload: event,
	}
}
