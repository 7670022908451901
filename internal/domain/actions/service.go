// Package actions runs list actions (delete, restore, complete, deactivate)
// through the confirmation step before forwarding them to the backend.
package actions

import (
	"context"
	"errors"
	"fmt"

	"storeadmin/internal/core/apperror"
	appctx "storeadmin/internal/core/context"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/confirm"
	"storeadmin/pkg/logger"
)

// Service opens and resolves confirmations.
type Service struct {
	mutator domain.Mutator
	store   *confirm.Store
}

// NewService creates the service. A nil mutator makes every action
// answer NOT_SUPPORTED (read-only data source).
func NewService(mutator domain.Mutator, store *confirm.Store) *Service {
	return &Service{mutator: mutator, store: store}
}

// Request opens a pending confirmation for action on entity/id.
func (s *Service) Request(ctx context.Context, entity domain.Entity, id int64, action domain.Action) (confirm.Request, error) {
	if err := s.check(ctx, entity, action); err != nil {
		return confirm.Request{}, err
	}
	if id <= 0 {
		return confirm.Request{}, apperror.NewValidation("id must be positive").WithDetail("id", id)
	}

	req := s.store.Open(entity, id, action, Prompt(entity, id, action), appctx.GetUserName(ctx))
	logger.Info(ctx, "confirmation requested",
		"confirmation_id", req.ID,
		"entity", entity,
		"id", id,
		"action", action)
	return req, nil
}

// Resolve answers a confirmation. A positive answer runs the transition;
// a negative one only closes the request. When the transition fails the
// request is pending again and can be re-answered until it expires.
func (s *Service) Resolve(ctx context.Context, confirmationID string, confirmed bool) (confirm.Request, error) {
	pending, err := s.store.Get(confirmationID)
	if err != nil {
		return confirm.Request{}, mapStoreErr(err, confirmationID)
	}
	if pending.RequestedBy != "" && pending.RequestedBy != appctx.GetUserName(ctx) {
		return confirm.Request{}, apperror.NewForbidden("confirmation belongs to another user")
	}

	req, err := s.store.Answer(confirmationID, confirmed)
	if err != nil {
		return req, mapStoreErr(err, confirmationID)
	}
	log := logger.FromContext(ctx).With(
		"confirmation_id", req.ID,
		"entity", req.Entity,
		"id", req.TargetID,
		"action", req.Action)
	if !confirmed {
		log.Infow("confirmation declined")
		return req, nil
	}

	if err := s.mutator.Transition(ctx, req.Entity, req.TargetID, req.Action); err != nil {
		if reopened, rerr := s.store.Reopen(req.ID); rerr == nil {
			req = reopened
		}
		log.Warnw("action failed", "error", err)
		return req, fmt.Errorf("%s %s %d: %w", req.Action, req.Entity, req.TargetID, err)
	}
	log.Infow("action applied")
	return req, nil
}

func (s *Service) check(ctx context.Context, entity domain.Entity, action domain.Action) error {
	if s.mutator == nil {
		return apperror.NewNotSupported("the configured data source is read-only")
	}
	if !entity.Supports(action) {
		return apperror.NewValidation(fmt.Sprintf("%s does not support %s", entity, action)).
			WithDetail("entity", entity).
			WithDetail("action", action)
	}
	if entity.AdminOnly() && !appctx.HasRole(ctx, appctx.RoleAdministrator) {
		return apperror.NewForbidden("You do not have permission for this action")
	}
	return nil
}

func mapStoreErr(err error, id string) error {
	switch {
	case errors.Is(err, confirm.ErrNotFound):
		return apperror.NewNotFound("confirmation", id)
	case errors.Is(err, confirm.ErrAlreadyAnswered):
		return apperror.NewAlreadyAnswered(id)
	default:
		return apperror.NewInternal(err)
	}
}

// Prompt is the question shown to the user.
func Prompt(entity domain.Entity, id int64, action domain.Action) string {
	switch action {
	case domain.ActionDelete:
		return fmt.Sprintf("Are you sure you want to deactivate %s %d?", entity, id)
	case domain.ActionRestore:
		return fmt.Sprintf("Are you sure you want to restore %s %d?", entity, id)
	case domain.ActionComplete:
		return fmt.Sprintf("Are you sure you want to complete %s %d?", entity, id)
	case domain.ActionDeactivate:
		return fmt.Sprintf("Are you sure you want to deactivate %s %d?", entity, id)
	default:
		return fmt.Sprintf("Are you sure you want to %s %s %d?", action, entity, id)
	}
}
