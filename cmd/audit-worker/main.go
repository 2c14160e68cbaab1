package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"sportsfund/internal/amqp"
	"sportsfund/internal/cli"
	"sportsfund/internal/log"
	"sportsfund/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting audit worker",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)

	w := worker.NewAuditWorker(logger)
	if err := w.Run(ctx, client); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Audit worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Audit worker stopped")
}
