package types

// BoundaryMessage is one frame received from the rendering surface or the
// desktop shell over the boundary socket channel
type BoundaryMessage struct {
	ID           string                 `json:"id,omitempty"`
	Type         string                 `json:"type"`
	Op           string                 `json:"op,omitempty"`
	Bridge       string                 `json:"bridge,omitempty"`
	Event        string                 `json:"event,omitempty"`
	Subscription string                 `json:"subscription,omitempty"`
	Params       map[string]interface{} `json:"params,omitempty"`
	Payload      map[string]interface{} `json:"payload,omitempty"`
}

// Boundary frame types, renderer → host
const (
	MessageCall        = "call"
	MessageSubscribe   = "subscribe"
	MessageUnsubscribe = "unsubscribe"
	MessagePing        = "ping"
	// MessageEvent is also sent host-ward by the desktop shell to report
	// window lifecycle and menu events
	MessageEvent = "event"
)
