package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
)

// Get acessa endpoints sem wrapper tipado. Retorna nil em qualquer falha,
// inclusive com o modo DEGRADED; o chamador precisa checar nil.
func (s *Service) Get(ctx context.Context, path string, params url.Values) json.RawMessage {
	return s.raw(ctx, httpclient.Request{Method: http.MethodGet, Path: path, Params: params})
}

func (s *Service) Post(ctx context.Context, path string, body any) json.RawMessage {
	return s.raw(ctx, httpclient.Request{Method: http.MethodPost, Path: path, Body: body})
}

func (s *Service) Put(ctx context.Context, path string, body any) json.RawMessage {
	return s.raw(ctx, httpclient.Request{Method: http.MethodPut, Path: path, Body: body})
}

func (s *Service) Delete(ctx context.Context, path string) json.RawMessage {
	return s.raw(ctx, httpclient.Request{Method: http.MethodDelete, Path: path})
}

func (s *Service) raw(ctx context.Context, req httpclient.Request) json.RawMessage {
	body, err := s.client.Do(ctx, req)
	if err != nil {
		s.log.Warn("passthrough call failed",
			zap.String("method", req.Method),
			zap.String("path", req.Path),
			zap.String("reason", httpclient.Reason(err)),
			zap.Error(err),
		)
		s.onMock(ResourcePassthrough, httpclient.Reason(err))
		return nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		// 204 e afins: sucesso sem corpo
		s.onLive(ResourcePassthrough)
		return json.RawMessage("null")
	}
	if !json.Valid(body) {
		s.log.Warn("passthrough returned invalid json", zap.String("path", req.Path))
		s.onMock(ResourcePassthrough, "decode")
		return nil
	}
	s.onLive(ResourcePassthrough)
	return json.RawMessage(body)
}
