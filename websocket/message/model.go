package message

import (
	"encoding/json"
)

const (
	TypeTemplateGet  = "TEMPLATE_GET"
	TypeTemplate     = "TEMPLATE"
	TypeMapsDeployed = "MAPS_DEPLOYED"
	TypeError        = "ERROR"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type TemplateGetPayload struct {
	Name string `json:"name"`
}

type ErrorPayload struct {
	Request string `json:"request,omitempty"`
	Message string `json:"message"`
}
