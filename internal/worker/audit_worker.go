// Package worker consumes fund mutation events off the queue.
package worker

import (
	"context"

	"sportsfund/internal/amqp"
	"sportsfund/internal/log"
)

// AuditWorker records every mutation event as a structured log line,
// giving admins a trail of who-changed-what ordered by the broker.
type AuditWorker struct {
	logger *log.Logger
}

func NewAuditWorker(logger *log.Logger) *AuditWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &AuditWorker{
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleMutation processes one mutation message.
func (w *AuditWorker) HandleMutation(ctx context.Context, msg *amqp.MutationMessage) error {
	w.logger.InfoContext(ctx, "Fund mutation recorded",
		log.FieldResource, msg.Resource,
		log.FieldOperation, msg.Action,
		log.FieldEntityID, msg.ID,
		"occurred_at", msg.Timestamp)
	return nil
}

// Run consumes mutation messages until ctx is cancelled.
func (w *AuditWorker) Run(ctx context.Context, client *amqp.Client) error {
	return client.ConsumeMutations(ctx, func(msg *amqp.MutationMessage) error {
		return w.HandleMutation(ctx, msg)
	})
}
