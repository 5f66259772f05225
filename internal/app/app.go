package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"

	"github.com/storekit/orders/internal/config"
	"github.com/storekit/orders/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewOrdersFacade,
		newHTTPServer,
		newPaymentConsumer,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type consumerParams struct {
	fx.In

	Facade worker.PaymentFacade
	Config *config.Config
	Logger *slog.Logger
}

func newPaymentConsumer(p consumerParams) *worker.PaymentConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  p.Config.KafkaBrokers,
		GroupID:  p.Config.ConsumerGroup,
		Topic:    p.Config.PaymentTopic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return worker.NewPaymentConsumer(reader, p.Facade, p.Logger)
}

type lifecycleParams struct {
	fx.In

	Ctx        context.Context
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Consumer   *worker.PaymentConsumer
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting orders service", slog.String("addr", p.Server.Addr))
			// The consumer outlives the startup hook, so it runs on the
			// application context rather than the hook context.
			p.Consumer.Start(p.Ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Consumer.Stop()

			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("orders service stopped")
			return nil
		},
	})
}
