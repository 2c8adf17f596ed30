package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/visorhq/visor/host/internal/bridge"
	"github.com/visorhq/visor/host/internal/deeplink"
	"github.com/visorhq/visor/host/internal/infrastructure/logging"
	"github.com/visorhq/visor/host/internal/infrastructure/monitoring"
	"github.com/visorhq/visor/host/internal/relay"
	"github.com/visorhq/visor/host/internal/shared/id"
	"github.com/visorhq/visor/host/internal/shared/types"
)

// callTimeout bounds a single bridge op host round trip
const callTimeout = 30 * time.Second

// roleShell marks a desktop shell attach (?role=shell). Anything else is
// treated as the rendering surface.
const roleShell = "shell"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The boundary endpoint binds to loopback; the renderer webview
		// presents a non-HTTP origin.
		return true
	},
}

// Handler manages boundary sessions
type Handler struct {
	registry *bridge.Registry
	intake   *deeplink.Intake
	hub      *Hub
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewHandler creates a boundary session handler
func NewHandler(registry *bridge.Registry, intake *deeplink.Intake, hub *Hub, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	return &Handler{
		registry: registry,
		intake:   intake,
		hub:      hub,
		logger:   logger,
		metrics:  metrics,
	}
}

type session struct {
	id      string
	role    string
	conn    *websocket.Conn
	handler *Handler

	writeMu sync.Mutex

	subsMu sync.Mutex
	subs   map[string]relay.DetachFunc
}

// HandleConnection upgrades the request and serves one boundary session
// until the peer disconnects
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// sole diagnostic for socket channel initialization; never retried
		h.logger.Warn("boundary socket channel initialization failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s := &session{
		id:      string(id.NewSessionID()),
		role:    c.DefaultQuery("role", "renderer"),
		conn:    conn,
		handler: h,
		subs:    make(map[string]relay.DetachFunc),
	}
	h.hub.add(s)
	defer h.hub.remove(s.id)
	defer s.detachAll()

	h.metrics.WSConnections.Inc()
	defer h.metrics.WSConnections.Dec()

	// a fresh attach of the rendering surface re-runs the deep-link Start
	// transition, consuming the reset sentinel if one is pending. The
	// shell shares the endpoint but its attach is not a page load, so it
	// must leave a pending reset for the renderer to consume.
	if s.role != roleShell {
		if err := h.intake.Rearm(); err != nil {
			h.logger.Warn("deep link rearm failed", zap.Error(err))
		}
	}

	h.logger.Info("boundary session attached",
		zap.String("session", s.id),
		zap.String("role", s.role),
	)
	s.write(map[string]interface{}{
		"type":    "system",
		"session": s.id,
		"bridges": h.registry.List(),
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			h.logger.Info("boundary session detached", zap.String("session", s.id))
			return
		}

		var msg types.BoundaryMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			s.sendError(msg.ID, "malformed boundary message")
			continue
		}
		h.metrics.WSMessages.WithLabelValues(msg.Type).Inc()

		switch msg.Type {
		case types.MessageCall:
			go s.handleCall(ctx, msg)
		case types.MessageSubscribe:
			s.handleSubscribe(msg)
		case types.MessageUnsubscribe:
			s.handleUnsubscribe(msg)
		case types.MessageEvent:
			h.dispatchHostEvent(msg)
		case types.MessagePing:
			s.write(map[string]interface{}{"type": "pong"})
		default:
			s.sendError(msg.ID, "unknown message type")
		}
	}
}

// handleCall runs one bridge op. Listener ops are rewritten to
// subscription handling because their contract is session-local.
func (s *session) handleCall(ctx context.Context, msg types.BoundaryMessage) {
	if strings.HasSuffix(msg.Op, ".addEventListener") {
		msg.Bridge = strings.TrimSuffix(msg.Op, ".addEventListener")
		if event, ok := msg.Params["event"].(string); ok {
			msg.Event = event
		}
		s.handleSubscribe(msg)
		return
	}
	if strings.HasSuffix(msg.Op, ".removeEventListener") {
		if sub, ok := msg.Params["subscription"].(string); ok {
			msg.Subscription = sub
		}
		s.handleUnsubscribe(msg)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	start := time.Now()
	result, _ := s.handler.registry.Execute(ctx, msg.Op, msg.Params)
	s.handler.metrics.RecordBridgeCall(msg.Op, result.Success, time.Since(start))

	s.write(map[string]interface{}{
		"type":   "result",
		"id":     msg.ID,
		"result": result,
	})
}

func (s *session) handleSubscribe(msg types.BoundaryMessage) {
	source, ok := s.eventSource(msg.Bridge, msg.Event)
	if !ok {
		s.sendError(msg.ID, "unknown event channel")
		return
	}

	subID := string(id.NewSubscriptionID())
	event := msg.Event
	detach := source.Relay().Attach(event, func(payload map[string]interface{}) {
		s.write(map[string]interface{}{
			"type":         "event",
			"event":        event,
			"subscription": subID,
			"payload":      payload,
		})
	})

	s.subsMu.Lock()
	s.subs[subID] = detach
	s.subsMu.Unlock()

	s.write(map[string]interface{}{
		"type": "result",
		"id":   msg.ID,
		"result": &types.Result{
			Success: true,
			Data:    map[string]interface{}{"subscription": subID},
		},
	})
}

func (s *session) handleUnsubscribe(msg types.BoundaryMessage) {
	s.subsMu.Lock()
	detach, ok := s.subs[msg.Subscription]
	delete(s.subs, msg.Subscription)
	s.subsMu.Unlock()

	if ok {
		detach()
	}
	s.write(map[string]interface{}{
		"type": "result",
		"id":   msg.ID,
		"result": &types.Result{
			Success: true,
			Data:    map[string]interface{}{"removed": ok},
		},
	})
}

// dispatchHostEvent feeds a shell-reported host event into the relay of
// the bridge exposing that channel
func (h *Handler) dispatchHostEvent(msg types.BoundaryMessage) {
	for _, def := range h.registry.List() {
		provider, ok := h.registry.Get(def.ID)
		if !ok {
			continue
		}
		source, ok := provider.(bridge.EventSource)
		if !ok {
			continue
		}
		for _, event := range source.Events() {
			if event == msg.Event {
				h.metrics.RelayEvents.WithLabelValues(event).Inc()
				source.Relay().Dispatch(event, msg.Payload)
				return
			}
		}
	}
	h.logger.Debug("dropped host event for unknown channel", zap.String("event", msg.Event))
}

func (s *session) eventSource(bridgeID, event string) (bridge.EventSource, bool) {
	provider, ok := s.handler.registry.Get(bridgeID)
	if !ok {
		return nil, false
	}
	source, ok := provider.(bridge.EventSource)
	if !ok {
		return nil, false
	}
	for _, name := range source.Events() {
		if name == event {
			return source, true
		}
	}
	return nil, false
}

func (s *session) detachAll() {
	s.subsMu.Lock()
	detaches := make([]relay.DetachFunc, 0, len(s.subs))
	for _, detach := range s.subs {
		detaches = append(detaches, detach)
	}
	s.subs = make(map[string]relay.DetachFunc)
	s.subsMu.Unlock()

	for _, detach := range detaches {
		detach()
	}
}

func (s *session) write(frame map[string]interface{}) error {
	data, err := sonic.Marshal(frame)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *session) sendError(id, message string) {
	s.write(map[string]interface{}{
		"type":   "result",
		"id":     id,
		"result": &types.Result{Success: false, Error: &message},
	})
}
