package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

const defaultReconnect = 5 * time.Second

// Client consome o WebSocket do backend A1Betting e repassa cada frame
// {type, data} para os handlers registrados naquele tipo.
type Client struct {
	URL       string        // WEBSOCKET_URL; vazio desliga o cliente
	Log       *zap.Logger   // Logger estruturado
	Reconnect time.Duration // espera entre tentativas de reconexão

	dialer    *websocket.Dialer
	mu        sync.RWMutex
	handlers  map[string][]func(events.RealtimeMessage)
	connected atomic.Bool
}

func New(url string, log *zap.Logger) *Client {
	return &Client{
		URL:       url,
		Log:       log,
		Reconnect: defaultReconnect,
		dialer:    websocket.DefaultDialer,
		handlers:  make(map[string][]func(events.RealtimeMessage)),
	}
}

// On registra um handler para um tipo de mensagem, inclusive os sintéticos
// "connection" e "disconnection"
func (c *Client) On(msgType string, fn func(events.RealtimeMessage)) {
	c.mu.Lock()
	c.handlers[msgType] = append(c.handlers[msgType], fn)
	c.mu.Unlock()
}

func (c *Client) Connected() bool { return c.connected.Load() }

// Start mantém a conexão viva até o contexto ser cancelado,
// reconectando a cada c.Reconnect quando o servidor cai
func (c *Client) Start(ctx context.Context) {
	if c.URL == "" {
		c.Log.Info("websocket url not configured, realtime updates disabled")
		return
	}
	wait := c.Reconnect
	if wait <= 0 {
		wait = defaultReconnect
	}

	for {
		if err := c.connectAndListen(ctx); err != nil {
			c.Log.Warn("realtime connection closed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			c.Log.Info("context canceled, stopping realtime client")
			return
		case <-time.After(wait):
		}
	}
}

func (c *Client) connectAndListen(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// ReadMessage não observa o contexto; fechar a conexão desbloqueia a leitura
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	c.connected.Store(true)
	c.Log.Info("connected to backend websocket", zap.String("url", c.URL))
	c.dispatch(synthetic(events.RealtimeConnection, "connected"))
	defer func() {
		c.connected.Store(false)
		c.dispatch(synthetic(events.RealtimeDisconnection, "disconnected"))
	}()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || ctx.Err() != nil {
				return nil
			}
			return err
		}

		var msg events.RealtimeMessage
		if err := json.Unmarshal(frame, &msg); err != nil || msg.Type == "" {
			if err == nil {
				err = errors.New("missing type")
			}
			c.Log.Warn("invalid realtime frame", zap.Error(err))
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg events.RealtimeMessage) {
	c.mu.RLock()
	hs := append([]func(events.RealtimeMessage){}, c.handlers[msg.Type]...)
	c.mu.RUnlock()

	for _, h := range hs {
		h(msg)
	}
}

func synthetic(msgType, status string) events.RealtimeMessage {
	data, _ := json.Marshal(map[string]string{"status": status})
	return events.RealtimeMessage{Type: msgType, Data: data}
}
