package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/survivor-pool/survivor-pool/cmd/rest-api/routing"
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	mongodb "github.com/survivor-pool/survivor-pool/pkg/infra/db/mongodb"
	ioc "github.com/survivor-pool/survivor-pool/pkg/infra/ioc"

	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	builder := ioc.NewContainerBuilder()
	c := builder.
		WithEnvFile().
		With(ioc.InjectMongoDB).
		WithAdapters().
		WithUseCases().
		Build()

	var config common.Config
	if err := c.Resolve(&config); err != nil {
		slog.ErrorContext(ctx, "failed to resolve config", "error", err)
		panic(err)
	}

	var client *mongo.Client
	if err := c.Resolve(&client); err != nil {
		slog.ErrorContext(ctx, "failed to resolve mongo client", "error", err)
		panic(err)
	}

	if err := mongodb.CreateIndexes(ctx, client, config.MongoDB.DBName); err != nil {
		slog.ErrorContext(ctx, "failed to create indexes", "error", err)
	}

	router := routing.NewRouter(c)

	port := config.Port
	if port == "" {
		port = "8080"
	}

	slog.InfoContext(ctx, "starting server", "port", port)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-shutdownChan
		slog.InfoContext(ctx, "received shutdown signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "server shutdown error", "error", err)
		}

		if err := client.Disconnect(shutdownCtx); err != nil {
			slog.ErrorContext(ctx, "mongo disconnect error", "error", err)
		}

		cancel()
		slog.InfoContext(ctx, "server shutdown complete")
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.ErrorContext(ctx, "server error", "error", err)
		os.Exit(1)
	}
}
