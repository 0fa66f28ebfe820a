package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/mohaiminul-islam-git/CashFlow/internal/amqp"
	"github.com/mohaiminul-islam-git/CashFlow/internal/assistant"
	"github.com/mohaiminul-islam-git/CashFlow/internal/cli"
	apphttp "github.com/mohaiminul-islam-git/CashFlow/internal/http"
	"github.com/mohaiminul-islam-git/CashFlow/internal/tracker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting cashflow server")

	dataStore := cli.InitStore(logger, cfg)
	defer dataStore.Close()

	// AMQP is optional: without a broker the tracker simply skips event
	// publishing and the sheet mirror stays cold.
	var publisher tracker.EventPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	ctx, stop := cli.SignalContext()
	defer stop()

	tr, err := tracker.New(ctx, dataStore, publisher, logger)
	if err != nil {
		logger.Error("Failed to initialize tracker", "error", err)
		os.Exit(1)
	}

	advisor := assistant.New(assistant.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, logger)
	if advisor.Enabled() {
		logger.Info("Assistant enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("Assistant disabled - no OPENAI_API_KEY provided")
	}

	srv := apphttp.NewServer(":"+cfg.Port, tr, advisor)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Listening", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
