package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/radieske/a1betting-bridge/internal/bff/http"
	"github.com/radieske/a1betting-bridge/internal/bff/ws"
	"github.com/radieske/a1betting-bridge/internal/integration/backend"
	"github.com/radieske/a1betting-bridge/internal/integration/bridge"
	"github.com/radieske/a1betting-bridge/internal/integration/events"
	"github.com/radieske/a1betting-bridge/internal/integration/httpclient"
	"github.com/radieske/a1betting-bridge/internal/integration/mock"
	"github.com/radieske/a1betting-bridge/internal/integration/probe"
	"github.com/radieske/a1betting-bridge/internal/integration/realtime"
	"github.com/radieske/a1betting-bridge/internal/integration/service"
	"github.com/radieske/a1betting-bridge/internal/integration/state"
	"github.com/radieske/a1betting-bridge/internal/shared/cache"
	"github.com/radieske/a1betting-bridge/internal/shared/config"
	"github.com/radieske/a1betting-bridge/internal/shared/logger"
	"github.com/radieske/a1betting-bridge/internal/shared/metrics"
	cevents "github.com/radieske/a1betting-bridge/pkg/contracts/events"
)

const cachePrefix = "a1:api:"

// recursos invalidados no cache a cada atualização em tempo real
var invalidations = map[string][]string{
	cevents.RealtimeOddsUpdate: {
		backend.ResourceBettingOpportunities,
		backend.ResourceValueBets,
		backend.ResourceArbitrageOpportunities,
	},
	cevents.RealtimePredictionUpdate: {
		backend.ResourcePredictions,
		backend.ResourceUltraAccuracyPredictions,
	},
	cevents.RealtimeBetUpdate: {
		backend.ResourceActiveBets,
		backend.ResourceTransactions,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config: %w", err))
	}

	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewIntegration(reg)

	baseURL := httpclient.ResolveBaseURL(cfg)
	log.Info("starting service",
		zap.String("env", cfg.Env),
		zap.String("base_url", baseURL),
		zap.String("websocket_url", cfg.WebSocketURL),
	)

	mode := state.NewMode()
	mode.OnChange(func(c state.Change) {
		if c.To == state.Degraded {
			m.Degraded.Set(1)
			log.Info("backend unavailable, serving demo data",
				zap.String("reason", c.Reason), zap.String("base_url", baseURL))
			return
		}
		m.Degraded.Set(0)
		log.Info("backend live again", zap.String("base_url", baseURL))
	})

	opts := []backend.Option{backend.WithHooks(backend.Hooks{
		OnLive:     func(res string) { m.Requests.WithLabelValues(res, "live").Inc() },
		OnCacheHit: func(res string) { m.Requests.WithLabelValues(res, "cache").Inc() },
		OnMock: func(res, reason string) {
			m.Requests.WithLabelValues(res, "mock").Inc()
			m.Fallbacks.WithLabelValues(res, reason).Inc()
		},
	})}

	// cache Redis opcional
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		rdb, err = cache.ConnectRedis(rctx, cfg.RedisAddr)
		cancel()
		if err != nil {
			log.Warn("redis unavailable, response cache disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			opts = append(opts, backend.WithCache(cache.NewJSONCache(rdb, cachePrefix), cfg.CacheTTL))
			log.Info("redis connected", zap.String("addr", cfg.RedisAddr))
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	// eventos de mudança de modo no Kafka (opcional)
	if cfg.KafkaBrokers != "" {
		pub := events.NewKafkaPublisher(gctx, cfg.KafkaBrokers, cfg.TopicModeChanges, cfg.IsDevelopment(), log)
		defer pub.Close()
		relay := events.NewRelay(pub, cfg.ServiceName, baseURL, log)
		relay.Attach(mode)
		g.Go(func() error {
			relay.Run(gctx)
			return nil
		})
		log.Info("kafka mode events enabled", zap.String("topic", cfg.TopicModeChanges))
	}

	client := httpclient.New(baseURL, cfg.RequestTimeout, mode, log)
	facade := backend.New(client, mode, mock.NewProvider(), log, opts...)

	// stream em tempo real do backend
	rt := realtime.New(cfg.WebSocketURL, log)
	for _, msgType := range []string{
		cevents.RealtimeOddsUpdate, cevents.RealtimePredictionUpdate, cevents.RealtimeBetUpdate,
		cevents.RealtimeConnection, cevents.RealtimeDisconnection,
	} {
		rt.On(msgType, func(msg cevents.RealtimeMessage) { m.Realtime.WithLabelValues(msg.Type).Inc() })
	}

	// UI recebe as atualizações e as trocas de modo via /v1/stream
	hub := ws.NewHub(ws.AllowOrigins(cfg.AllowedOrigins), log)
	mode.OnChange(func(c state.Change) {
		hub.Publish(modeMessage(c, baseURL, cfg.ServiceName))
	})

	svc := service.New(facade, log, service.WithStream(rt))
	svc.OnRealtimeUpdate(func(msg cevents.RealtimeMessage) {
		facade.Invalidate(gctx, invalidations[msg.Type]...)
		hub.Publish(msg)
	})

	g.Go(func() error {
		hub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		rt.Start(gctx)
		return nil
	})

	if cfg.ReprobeEnabled {
		prober := probe.New(client, mode, log, cfg.ReprobeInitial, cfg.ReprobeMax)
		g.Go(func() error {
			prober.Start(gctx)
			return nil
		})
	}

	// metrics + healthz
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, reg, func(ctx context.Context) error {
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	api := &httpapi.API{
		Service:        svc,
		Bridge:         bridge.New(svc, log),
		Log:            log,
		Stream:         hub,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		log.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsSrv.Shutdown(shCtx)
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("service stopped with error", zap.Error(err))
	}
}

func modeMessage(c state.Change, baseURL, source string) cevents.RealtimeMessage {
	data, _ := json.Marshal(cevents.ModeChanged{
		From:      string(c.From),
		To:        string(c.To),
		Reason:    c.Reason,
		BaseURL:   baseURL,
		Source:    source,
		ChangedAt: c.At.UTC(),
	})
	return cevents.RealtimeMessage{Type: cevents.RealtimeModeChanged, Data: data}
}
