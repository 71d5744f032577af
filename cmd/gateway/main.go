package main

import (
	"context"
	"log/slog"
	"os"

	"cosmiccraft/config"
	"cosmiccraft/internal/delivery"
	gatewaydelivery "cosmiccraft/internal/delivery/gateway"
	"cosmiccraft/internal/delivery/middleware"
	"cosmiccraft/internal/gateway"
	logs "cosmiccraft/internal/infra/log"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectGateway(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectGateway() fx.Option {
	return fx.Options(
		fx.Provide(
			gateway.NewTableFromConfig,
			gateway.NewDispatcher,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				gatewaydelivery.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start gateway", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
