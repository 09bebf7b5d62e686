// Package server exposes the inventory engine over gRPC and a kratos
// HTTP API, and keeps the snapshot history trimmed.
package server

import (
	"context"
	"net"
	"time"

	kratoshttp "github.com/go-kratos/kratos/v2/transport/http"
	swaggerUI "github.com/tx7do/kratos-swagger-ui"

	"github.com/go-tangra/go-tangra-hwscore/internal/config"
	"github.com/go-tangra/go-tangra-hwscore/internal/convert"
	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/go-tangra/go-tangra-hwscore/internal/inventory"
	"github.com/go-tangra/go-tangra-hwscore/internal/logger"
	"github.com/go-tangra/go-tangra-hwscore/internal/source"
	"github.com/go-tangra/go-tangra-hwscore/internal/store"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// WatchInterval is the period between usage samples pushed to watchers.
const WatchInterval = 2 * time.Second

// requestSlack is added to the probe timeout for HTTP request deadlines
// so a slow unit times out as a probe, not as a request.
const requestSlack = 5 * time.Second

// Run starts the gRPC and HTTP servers and blocks until the context is cancelled.
func Run(ctx context.Context, cfg *config.Config, engine *inventory.Engine, usage *source.UsageMonitor, openApiData []byte) error {
	errFactory := errors.New()

	db, err := store.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	watchers := NewWatchRegistry()
	handler := NewHandler(engine, usage, db, watchers)

	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(ClientSecretInterceptor(cfg.ClientSecret)),
		grpc.ChainStreamInterceptor(ClientSecretStreamInterceptor(cfg.ClientSecret)),
	)
	RegisterInventoryServiceServer(grpcSrv, handler)
	reflection.Register(grpcSrv)

	lis, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return errFactory.Wrap(errors.ErrInvalidConfig, err).WithData("listen gRPC on " + cfg.Listen)
	}

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Shutting down...")
		grpcSrv.GracefulStop()
	}()

	if cfg.RetentionDays > 0 {
		go runPurgeLoop(ctx, db, cfg.RetentionDays, cfg.PurgeInterval)
	}
	go runUsageLoop(ctx, usage, watchers, WatchInterval)

	httpSrv := kratoshttp.NewServer(
		kratoshttp.Address(cfg.HTTPListen),
		kratoshttp.Timeout(cfg.ProbeTimeout+requestSlack),
		kratoshttp.Middleware(ApiSecretMiddleware(cfg.ApiSecret)),
	)
	handler.RegisterRoutes(httpSrv)

	// Swagger UI is mounted with HandlePrefix and bypasses the middleware chain.
	if cfg.EnableSwagger && len(openApiData) > 0 {
		swaggerUI.RegisterSwaggerUIServerWithOption(
			httpSrv,
			swaggerUI.WithTitle("Hardware Score"),
			swaggerUI.WithMemoryData(openApiData, "yaml"),
		)
		logger.Info().Str("url", "http://"+cfg.HTTPListen+"/docs/").Msg("Swagger UI available")
	}

	go func() {
		if err := httpSrv.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	go func() {
		<-ctx.Done()
		_ = httpSrv.Stop(context.Background())
	}()

	logger.Info().
		Str("grpc", cfg.Listen).
		Str("http", cfg.HTTPListen).
		Str("database", cfg.DatabasePath).
		Msg("hwscore server listening")
	if cfg.RetentionDays > 0 {
		logger.Info().
			Int("retention_days", cfg.RetentionDays).
			Dur("purge_interval", cfg.PurgeInterval).
			Msg("History retention enabled")
	}

	return grpcSrv.Serve(lis)
}

func runPurgeLoop(ctx context.Context, db *store.Store, retentionDays int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeOnce(ctx, db, retentionDays)
		}
	}
}

func purgeOnce(ctx context.Context, db *store.Store, retentionDays int) int64 {
	olderThan := time.Duration(retentionDays) * 24 * time.Hour
	n, err := db.Purge(ctx, olderThan)
	if err != nil {
		logger.Error().Err(err).Msg("Purge failed")
		return 0
	}
	if n > 0 {
		logger.Info().Int64("purged", n).Int("retention_days", retentionDays).Msg("Purged old snapshots")
	}
	return n
}

// runUsageLoop samples the shared monitor while at least one watcher is
// connected and fans the reading out.
func runUsageLoop(ctx context.Context, usage *source.UsageMonitor, watchers *WatchRegistry, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			broadcastUsage(ctx, usage, watchers)
		}
	}
}

func broadcastUsage(ctx context.Context, usage *source.UsageMonitor, watchers *WatchRegistry) int {
	if watchers.Count() == 0 {
		return 0
	}

	u, err := usage.Sample(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Usage sample failed")
		return 0
	}

	msg, err := convert.ToStruct(u)
	if err != nil {
		logger.Warn().Err(err).Msg("Usage encode failed")
		return 0
	}
	return watchers.Broadcast(msg)
}
