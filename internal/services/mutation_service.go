// Package services orchestrates ledger writes across storage and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"sportsfund/internal/amqp"
	"sportsfund/internal/core"
	"sportsfund/internal/fund"
	"sportsfund/internal/storage"
)

// MutationService commits writes to SQLite and publishes a mutation event
// for each one. Publish failures are logged and swallowed; the write has
// already committed and the request must not fail because of the broker.
type MutationService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewMutationService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *MutationService {
	return &MutationService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// CreateUser saves a user and publishes a create event.
func (s *MutationService) CreateUser(ctx context.Context, u core.User) (core.User, error) {
	created, err := s.storage.CreateUser(ctx, u)
	if err != nil {
		return core.User{}, fmt.Errorf("save user: %w", err)
	}
	s.publish(ctx, fund.ResourceUsers, amqp.ActionCreate, created.ID)
	return created, nil
}

// UpdateUser updates a user and publishes an update event.
func (s *MutationService) UpdateUser(ctx context.Context, id int64, u core.User) (core.User, error) {
	updated, err := s.storage.UpdateUser(ctx, id, u)
	if err != nil {
		return core.User{}, err
	}
	s.publish(ctx, fund.ResourceUsers, amqp.ActionUpdate, id)
	return updated, nil
}

// DeleteUser removes a user and publishes a delete event.
func (s *MutationService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, fund.ResourceUsers, amqp.ActionDelete, id)
	return nil
}

// CreateContribution saves a contribution and publishes a create event.
func (s *MutationService) CreateContribution(ctx context.Context, c core.Contribution) (core.Contribution, error) {
	created, err := s.storage.CreateContribution(ctx, c)
	if err != nil {
		return core.Contribution{}, fmt.Errorf("save contribution: %w", err)
	}
	s.publish(ctx, fund.ResourceContributions, amqp.ActionCreate, created.ID)
	return created, nil
}

// UpdateContribution updates a contribution and publishes an update event.
func (s *MutationService) UpdateContribution(ctx context.Context, id int64, c core.Contribution) (core.Contribution, error) {
	updated, err := s.storage.UpdateContribution(ctx, id, c)
	if err != nil {
		return core.Contribution{}, err
	}
	s.publish(ctx, fund.ResourceContributions, amqp.ActionUpdate, id)
	return updated, nil
}

// DeleteContribution removes a contribution and publishes a delete event.
func (s *MutationService) DeleteContribution(ctx context.Context, id int64) error {
	if err := s.storage.DeleteContribution(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, fund.ResourceContributions, amqp.ActionDelete, id)
	return nil
}

// CreateExpense saves an expense and publishes a create event.
func (s *MutationService) CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error) {
	created, err := s.storage.CreateExpense(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, fund.ResourceExpenses, amqp.ActionCreate, created.ID)
	return created, nil
}

// UpdateExpense updates an expense and publishes an update event.
func (s *MutationService) UpdateExpense(ctx context.Context, id int64, e core.Expense) (core.Expense, error) {
	updated, err := s.storage.UpdateExpense(ctx, id, e)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, fund.ResourceExpenses, amqp.ActionUpdate, id)
	return updated, nil
}

// DeleteExpense removes an expense and publishes a delete event.
func (s *MutationService) DeleteExpense(ctx context.Context, id int64) error {
	if err := s.storage.DeleteExpense(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, fund.ResourceExpenses, amqp.ActionDelete, id)
	return nil
}

func (s *MutationService) publish(ctx context.Context, resource, action string, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishMutation(ctx, resource, action, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish mutation message",
			"resource", resource,
			"action", action,
			"id", id,
			"error", err)
	}
}

// Close closes both storage and AMQP connections.
func (s *MutationService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close mutation service: %v", errs)
	}

	return nil
}
