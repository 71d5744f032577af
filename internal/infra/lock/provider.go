package lock

import (
	"context"
	"log/slog"
	"strings"

	"cosmiccraft/config"
	"cosmiccraft/internal/domain/lifecycle"
	"cosmiccraft/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	// ProviderMemory keeps locks inside the process.
	ProviderMemory = "memory"
	// ProviderRedis shares locks between replicas.
	ProviderRedis = "redis"
)

// Params defines the parameters required for the locker
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New creates the KeyedLocker selected by locking.provider.
func New(params Params) (service.KeyedLocker, error) {
	cfg := params.Config.Locking

	switch strings.ToLower(cfg.Provider) {
	case "", ProviderMemory:
		params.Logger.Info("Using in-process keyed locker")

		return NewKeyedMutex(), nil
	case ProviderRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		params.Append(fx.Hook{
			OnStart: func(startCtx context.Context) error {
				ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
				defer cancel()

				return errors.Wrap(client.Ping(ctx).Err(), "failed to ping redis")
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})

		params.Logger.Info("Using redis keyed locker", slog.String("addr", cfg.Redis.Addr))

		return NewRedisLocker(client, params.Config.Env.ServiceName+":lock:", cfg.TTL, cfg.RetryInterval, params.Logger), nil
	default:
		return nil, errors.Errorf("unknown locking provider: %s", cfg.Provider)
	}
}
