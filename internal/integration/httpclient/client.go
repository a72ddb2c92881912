package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/state"
	"github.com/radieske/a1betting-bridge/internal/shared/config"
)

const (
	DefaultTimeout = 8 * time.Second
	devBaseURL     = "http://localhost:8000"
	maxBodyBytes   = 10 << 20
)

// ResolveBaseURL escolhe a origem do backend só a partir da config:
// override explícito, depois o default local em dev, depois a origem do deploy
func ResolveBaseURL(cfg config.Config) string {
	if cfg.APIURL != "" {
		return strings.TrimRight(cfg.APIURL, "/")
	}
	if cfg.IsDevelopment() {
		return devBaseURL
	}
	return strings.TrimRight(cfg.SiteOrigin, "/")
}

// Request descreve uma chamada ao backend
type Request struct {
	Method string
	Path   string
	Params url.Values
	Body   any
}

// Client é o único ponto de I/O com o backend A1Betting.
// Falhas de transporte, HTML no lugar de JSON e 502/503/504 levam o Mode para DEGRADED.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Mode    *state.Mode
	Log     *zap.Logger
}

func New(baseURL string, timeout time.Duration, mode *state.Mode, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Mode:    mode,
		Log:     log,
	}
}

// IsDegraded expõe o fast-path para a fachada
func (c *Client) IsDegraded() bool { return c.Mode.IsDegraded() }

// Do executa a chamada e devolve o corpo JSON intacto.
// Com o modo DEGRADED retorna ErrDegraded sem tocar na rede.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	if c.Mode.IsDegraded() {
		return nil, ErrDegraded
	}
	return c.send(ctx, r, true)
}

// Probe ignora o fast-path e não altera o modo; usado pelo re-probe
func (c *Client) Probe(ctx context.Context, r Request) ([]byte, error) {
	return c.send(ctx, r, false)
}

// DoJSON é Do + decode no destino
func (c *Client) DoJSON(ctx context.Context, r Request, dst any) error {
	body, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &Error{Kind: KindDecode, Path: r.Path, Err: err}
	}
	return nil
}

func (c *Client) send(ctx context.Context, r Request, classify bool) ([]byte, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := c.newRequest(ctx, method, r)
	if err != nil {
		return nil, c.fail(classify, &Error{Kind: KindTransport, Path: r.Path, Err: err})
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		// cancelamento pelo chamador não diz nada sobre o backend
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, &Error{Kind: KindCanceled, Path: r.Path, Err: err}
		}
		return nil, c.fail(classify, &Error{Kind: KindTransport, Path: r.Path, Err: err})
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, c.fail(classify, &Error{Kind: KindTransport, Path: r.Path, Err: err})
	}

	c.Log.Debug("backend request",
		zap.String("method", method),
		zap.String("path", r.Path),
		zap.Int("status", res.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", req.Header.Get("X-Request-ID")),
	)

	// HTML em qualquer status é servidor de arquivos estáticos, não a API
	switch {
	case looksLikeHTML(res.Header.Get("Content-Type"), body):
		return nil, c.fail(classify, &Error{Kind: KindShape, Status: res.StatusCode, Path: r.Path})
	case res.StatusCode == http.StatusBadGateway ||
		res.StatusCode == http.StatusServiceUnavailable ||
		res.StatusCode == http.StatusGatewayTimeout:
		return nil, c.fail(classify, &Error{Kind: KindUnavailable, Status: res.StatusCode, Path: r.Path})
	case res.StatusCode < 200 || res.StatusCode >= 300:
		return nil, &Error{Kind: KindStatus, Status: res.StatusCode, Path: r.Path}
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method string, r Request) (*http.Request, error) {
	if c.BaseURL == "" {
		return nil, errors.New("backend base url not configured")
	}

	u := c.BaseURL + r.Path
	if len(r.Params) > 0 {
		u += "?" + r.Params.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// fail promove falhas que indicam "não há API aqui" para o modo DEGRADED
func (c *Client) fail(classify bool, e *Error) error {
	if classify && e.Degrades() && c.Mode.Degrade(e.Error()) {
		c.Log.Warn("backend unreachable, switching to demo data",
			zap.String("kind", e.Kind.String()),
			zap.String("path", e.Path),
			zap.Error(e),
		)
	}
	return e
}

// looksLikeHTML detecta respostas de servidor de arquivos estáticos
func looksLikeHTML(contentType string, body []byte) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	trimmed := bytes.TrimLeft(body, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
