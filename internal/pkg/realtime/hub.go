package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Channel every instance subscribes to when Redis is configured.
const eventsChannel = "staybook:form_events"

var (
	wsConnectionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "staybook_websocket_connections",
		Help: "Open form event WebSocket connections on this instance.",
	})
	wsEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "staybook_websocket_events_total",
		Help: "Form events handed to WebSocket connections, by result.",
	}, []string{"result"})
)

// Event is pushed to every connection watching a topic.
type Event struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
	Data  any    `json:"data,omitempty"`
}

type envelope struct {
	Topic            string          `json:"topic"`
	Payload          json.RawMessage `json:"payload"`
	SenderInstanceID string          `json:"sender_instance_id"`
}

// Connection represents a WebSocket connection watching one topic.
type Connection struct {
	Topic string
	Conn  *websocket.Conn
	Send  chan []byte
}

// Hub fans events out to local WebSocket connections and, through Redis Pub/Sub, to the
// connections held by other instances.
type Hub struct {
	connections map[string]map[*Connection]bool

	redis  *redis.Client
	pubsub *redis.PubSub

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection

	ctx    context.Context
	cancel context.CancelFunc

	instanceID string
	publishFn  func(ctx context.Context, payload []byte) error
}

// NewHub creates a hub. redisClient may be nil for single-instance deployments.
func NewHub(redisClient *redis.Client) *Hub {
	return NewHubWithInstanceID(redisClient, uuid.NewString())
}

// NewHubWithInstanceID creates a hub with an explicit instance identifier.
func NewHubWithInstanceID(redisClient *redis.Client, instanceID string) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		connections: make(map[string]map[*Connection]bool),
		redis:       redisClient,
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		ctx:         ctx,
		cancel:      cancel,
		instanceID:  instanceID,
	}

	if redisClient != nil {
		h.pubsub = redisClient.Subscribe(ctx, eventsChannel)
		h.publishFn = func(ctx context.Context, payload []byte) error {
			return redisClient.Publish(ctx, eventsChannel, payload).Err()
		}
	}

	return h
}

// Run starts the hub (call in goroutine)
func (h *Hub) Run() {
	if h.pubsub != nil {
		go h.runRedisSubscriber()
	}

	for {
		select {
		case <-h.ctx.Done():
			return

		case conn := <-h.register:
			h.mu.Lock()
			if h.connections[conn.Topic] == nil {
				h.connections[conn.Topic] = make(map[*Connection]bool)
			}
			h.connections[conn.Topic][conn] = true
			h.mu.Unlock()
			wsConnectionsGauge.Inc()
			log.Debug().Str("topic", conn.Topic).Msg("Form events connection opened")

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.connections[conn.Topic]; ok {
				if _, exists := conns[conn]; exists {
					delete(conns, conn)
					close(conn.Send)
					wsConnectionsGauge.Dec()
				}
				if len(conns) == 0 {
					delete(h.connections, conn.Topic)
				}
			}
			h.mu.Unlock()
			log.Debug().Str("topic", conn.Topic).Msg("Form events connection closed")
		}
	}
}

func (h *Hub) runRedisSubscriber() {
	ch := h.pubsub.Channel()

	for {
		select {
		case <-h.ctx.Done():
			return

		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleEnvelope([]byte(msg.Payload))
		}
	}
}

func (h *Hub) handleEnvelope(payload []byte) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return
	}
	if env.SenderInstanceID == h.instanceID {
		return
	}
	h.sendLocal(env.Topic, env.Payload)
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.ctx.Done():
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.ctx.Done():
	}
}

// Publish delivers an event to every connection on the topic, on any instance.
func (h *Hub) Publish(topic string, event Event) {
	event.Topic = topic
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal form event")
		return
	}

	h.sendLocal(topic, data)

	if h.publishFn == nil {
		return
	}
	env, err := json.Marshal(envelope{Topic: topic, Payload: data, SenderInstanceID: h.instanceID})
	if err != nil {
		return
	}
	if err := h.publishFn(h.ctx, env); err != nil {
		log.Error().Err(err).Str("channel", eventsChannel).Msg("Redis publish failed")
	}
}

func (h *Hub) sendLocal(topic string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.connections[topic] {
		select {
		case conn.Send <- data:
			wsEventsTotal.WithLabelValues("sent").Inc()
		default:
			wsEventsTotal.WithLabelValues("dropped").Inc()
			log.Warn().Str("topic", topic).Msg("WebSocket send buffer full")
		}
	}
}

// ConnectionCount returns the number of local connections on a topic.
func (h *Hub) ConnectionCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[topic])
}

// Shutdown gracefully shuts down the hub
func (h *Hub) Shutdown() {
	h.cancel()
	if h.pubsub != nil {
		h.pubsub.Close()
	}
}
