// Package ws repassa para a UI as mensagens em tempo real do backend.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

// ClientMsg é o comando enviado pelo navegador.
// Type: subscribe | unsubscribe | ping. Topic é um tipo de mensagem
// (odds_update, prediction_update, ...) e é obrigatório em subscribe/unsubscribe.
type ClientMsg struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

const (
	writeWait   = 5 * time.Second
	queueBuffer = 64
)

// conn serializa as escritas: gorilla não aceita writers concorrentes
type conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, b)
}

// Hub mantém topic -> conexões inscritas
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger

	mu   sync.RWMutex
	subs map[string]map[*conn]struct{}

	queue chan events.RealtimeMessage
}

func NewHub(allowOrigin func(r *http.Request) bool, log *zap.Logger) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{CheckOrigin: allowOrigin},
		log:      log,
		subs:     make(map[string]map[*conn]struct{}),
		queue:    make(chan events.RealtimeMessage, queueBuffer),
	}
}

// Publish enfileira a mensagem para o Run entregar; nunca bloqueia quem chama
// (listeners do modo rodam dentro da requisição que falhou). Fila cheia descarta.
func (h *Hub) Publish(msg events.RealtimeMessage) {
	select {
	case h.queue <- msg:
	default:
		h.log.Warn("realtime message dropped, hub queue full", zap.String("type", msg.Type))
	}
}

// Run entrega as mensagens publicadas até o contexto ser cancelado
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-h.queue:
			h.Broadcast(msg)
		}
	}
}

// AllowOrigins aceita requisições sem Origin (clientes fora do navegador),
// as origens listadas, ou qualquer origem quando a lista contém "*"
func AllowOrigins(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed["*"]; ok {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

// HandleWS atende uma conexão até o cliente desconectar
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	c := &conn{ws: ws}
	defer func() {
		h.drop(c)
		_ = ws.Close()
	}()

	for {
		var msg ClientMsg
		if err := ws.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Type {
		case "subscribe":
			if msg.Topic != "" {
				h.subscribe(c, msg.Topic)
			}
		case "unsubscribe":
			h.unsubscribe(c, msg.Topic)
		case "ping":
			_ = c.write([]byte(`{"type":"pong"}`))
		}
	}
}

func (h *Hub) subscribe(c *conn, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[topic]; !ok {
		h.subs[topic] = make(map[*conn]struct{})
	}
	h.subs[topic][c] = struct{}{}
}

func (h *Hub) unsubscribe(c *conn, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[topic]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
}

func (h *Hub) drop(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic, set := range h.subs {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Subscribers conta as conexões inscritas num tópico
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

// Broadcast envia a mensagem para quem assinou msg.Type
func (h *Hub) Broadcast(msg events.RealtimeMessage) {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.subs[msg.Type]))
	for c := range h.subs[msg.Type] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	if len(targets) == 0 {
		return
	}

	b, err := json.Marshal(msg)
	if err != nil {
		h.log.Warn("realtime message not encodable", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	for _, c := range targets {
		if err := c.write(b); err != nil {
			h.log.Debug("websocket write failed", zap.Error(err))
		}
	}
}
