package command

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

// ProgressionPatchCommandConfig wires dependencies for the patch orchestrator.
type ProgressionPatchCommandConfig struct {
	Repository types.ProgressionRepository
	Customers  types.CustomerRepository
	Merger     Merger
	Validator  Validator
	Notifier   *Notifier
	Audit      types.AuditSink
	Hooks      types.Hooks
	Clock      types.Clock
	Logger     types.Logger
}

// ProgressionPatchInput captures a partial-update request. Touchpoint,
// API URL, and correlation id come from the request context; transports
// resolve them via pkg/requestctx before building the input.
type ProgressionPatchInput struct {
	CustomerID    uuid.UUID
	ProgressionID uuid.UUID
	Patch         *types.ProgressionPatch
	TouchpointID  string
	APIURL        string
	CorrelationID string
	Result        *types.PatchResult
}

// Type implements gocommand.Message.
func (ProgressionPatchInput) Type() string {
	return "command.progression.patch"
}

// Validate implements gocommand.Message. These are the pure request-shape
// gates; they run before any storage access.
func (input ProgressionPatchInput) Validate() error {
	if strings.TrimSpace(input.TouchpointID) == "" {
		return ErrTouchpointRequired
	}
	if strings.TrimSpace(input.APIURL) == "" {
		return ErrAPIURLRequired
	}
	if input.CustomerID == uuid.Nil {
		return ErrCustomerIDRequired
	}
	if input.ProgressionID == uuid.Nil {
		return ErrProgressionIDRequired
	}
	return nil
}

// ProgressionPatchCommand sequences the patch pipeline: request gates,
// customer gates, read, merge, re-validate, conditional replace, notify.
type ProgressionPatchCommand struct {
	repo      types.ProgressionRepository
	customers types.CustomerRepository
	merger    Merger
	validator Validator
	notifier  *Notifier
	audit     types.AuditSink
	hooks     types.Hooks
	clock     types.Clock
	logger    types.Logger
}

// NewProgressionPatchCommand constructs the patch handler.
func NewProgressionPatchCommand(cfg ProgressionPatchCommandConfig) *ProgressionPatchCommand {
	return &ProgressionPatchCommand{
		repo:      cfg.Repository,
		customers: cfg.Customers,
		merger:    cfg.Merger,
		validator: cfg.Validator,
		notifier:  cfg.Notifier,
		audit:     cfg.Audit,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		logger:    safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ProgressionPatchInput] = (*ProgressionPatchCommand)(nil)

// Execute runs the patch pipeline. Gate failures that the HTTP contract
// treats as "nothing to do" resolve the Result outcome and return nil;
// client and business rule failures return typed errors.
func (c *ProgressionPatchCommand) Execute(ctx context.Context, input ProgressionPatchInput) error {
	if c.repo == nil {
		return types.ErrMissingProgressionRepository
	}
	if c.customers == nil {
		return types.ErrMissingCustomerRepository
	}
	if c.merger == nil {
		return types.ErrMissingMerger
	}
	if c.validator == nil {
		return types.ErrMissingValidator
	}
	if err := input.Validate(); err != nil {
		return err
	}

	if input.Patch == nil {
		return c.resolve(input, types.PatchResult{Outcome: types.PatchOutcomeNoop})
	}

	// Record and customer identifiers come from the route, never the body;
	// a patch cannot move a document to another customer.
	patch := *input.Patch
	progressionID := input.ProgressionID
	customerID := input.CustomerID
	touchpoint := input.TouchpointID
	patch.ID = &progressionID
	patch.CustomerID = &customerID
	patch.LastModifiedTouchpointID = &touchpoint
	if patch.LastModifiedDate == nil {
		modified := now(c.clock)
		patch.LastModifiedDate = &modified
	}

	readOnly, err := c.customers.CustomerIsReadOnly(ctx, input.CustomerID)
	if err != nil {
		return err
	}
	if readOnly {
		return types.ErrCustomerReadOnly
	}

	exists, err := c.customers.CustomerExists(ctx, input.CustomerID)
	if err != nil {
		return err
	}
	if !exists {
		return types.ErrCustomerNotFound
	}

	hasProgression, err := c.repo.HasProgression(ctx, input.CustomerID)
	if err != nil {
		return err
	}
	if !hasProgression {
		return c.resolve(input, types.PatchResult{Outcome: types.PatchOutcomeNotFound})
	}

	current, err := c.repo.GetDocument(ctx, input.CustomerID, input.ProgressionID)
	if err != nil {
		if errors.Is(err, types.ErrProgressionNotFound) {
			return c.resolve(input, types.PatchResult{Outcome: types.PatchOutcomeNotFound})
		}
		return err
	}

	merged, err := c.merger.Merge(current, &patch)
	if err != nil {
		if errors.Is(err, types.ErrMalformedDocument) {
			c.logger.Error("go-progressions: stored document failed to merge", err,
				"customer_id", input.CustomerID.String(),
				"progression_id", input.ProgressionID.String())
			return c.resolve(input, types.PatchResult{Outcome: types.PatchOutcomeNotFound})
		}
		return err
	}

	// The request's touchpoint wins over any touchpoint carried in the
	// stored document or patch body.
	merged, err = c.merger.Merge(merged, &types.ProgressionPatch{LastModifiedTouchpointID: &touchpoint})
	if err != nil {
		return err
	}

	var shape types.ProgressionPatch
	if err := json.Unmarshal(merged, &shape); err != nil {
		return types.NewValidationError(types.Violation{
			Field:   "LearningProgression",
			Message: "merged document could not be parsed",
		})
	}

	if violations := c.validator.Validate(&shape); len(violations) > 0 {
		return types.NewValidationError(violations...)
	}

	replaced, err := c.repo.ReplaceDocument(ctx, input.CustomerID, input.ProgressionID, merged)
	if err != nil {
		return err
	}
	if !replaced {
		return c.resolve(input, types.PatchResult{Outcome: types.PatchOutcomeNotReplaced})
	}

	var document map[string]any
	if err := json.Unmarshal(merged, &document); err != nil {
		document = nil
	}
	document = rekeyDocument(document)

	progression := types.ProgressionFromPatch(&shape)
	if progression.CustomerID == uuid.Nil {
		progression.CustomerID = input.CustomerID
	}

	occurred := now(c.clock)
	if c.notifier != nil {
		_ = c.notifier.Dispatch(ctx, notifyEvent{
			customerID:    input.CustomerID,
			progressionID: input.ProgressionID,
			touchpointID:  input.TouchpointID,
			correlationID: input.CorrelationID,
			apiURL:        input.APIURL,
			resource:      document,
		})
	}
	recordAudit(ctx, c.audit, types.AuditRecord{
		CustomerID:    input.CustomerID,
		TouchpointID:  input.TouchpointID,
		Verb:          "patch",
		ObjectType:    "learning_progression",
		ObjectID:      input.ProgressionID.String(),
		CorrelationID: input.CorrelationID,
		Data:          document,
		OccurredAt:    occurred,
	})
	emitProgressionHook(ctx, c.hooks, types.ProgressionEvent{
		CustomerID:    input.CustomerID,
		ProgressionID: input.ProgressionID,
		Action:        "patched",
		TouchpointID:  input.TouchpointID,
		OccurredAt:    occurred,
		Progression:   progression,
	})

	return c.resolve(input, types.PatchResult{
		Outcome:     types.PatchOutcomeUpdated,
		Progression: progression,
		Document:    document,
	})
}

func (c *ProgressionPatchCommand) resolve(input ProgressionPatchInput, result types.PatchResult) error {
	if input.Result != nil {
		*input.Result = result
	}
	return nil
}
