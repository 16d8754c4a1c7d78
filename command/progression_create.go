package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

// ProgressionCreateCommandConfig wires dependencies for the create command.
type ProgressionCreateCommandConfig struct {
	Repository types.ProgressionRepository
	Customers  types.CustomerRepository
	Validator  Validator
	Notifier   *Notifier
	Audit      types.AuditSink
	Hooks      types.Hooks
	Clock      types.Clock
	IDGen      types.IDGenerator
	Logger     types.Logger
}

// ProgressionCreateInput captures a create request. The server assigns the
// record id and timestamps; the payload's id field is ignored.
type ProgressionCreateInput struct {
	CustomerID    uuid.UUID
	Progression   *types.LearningProgression
	TouchpointID  string
	APIURL        string
	CorrelationID string
	Result        *types.LearningProgression
}

// Type implements gocommand.Message.
func (ProgressionCreateInput) Type() string {
	return "command.progression.create"
}

// Validate implements gocommand.Message.
func (input ProgressionCreateInput) Validate() error {
	if strings.TrimSpace(input.TouchpointID) == "" {
		return ErrTouchpointRequired
	}
	if strings.TrimSpace(input.APIURL) == "" {
		return ErrAPIURLRequired
	}
	if input.CustomerID == uuid.Nil {
		return ErrCustomerIDRequired
	}
	if input.Progression == nil {
		return ErrProgressionRequired
	}
	return nil
}

// ProgressionCreateCommand creates the single progression record a customer
// may hold: customer gates, duplicate check, validation, insert, notify.
type ProgressionCreateCommand struct {
	repo      types.ProgressionRepository
	customers types.CustomerRepository
	validator Validator
	notifier  *Notifier
	audit     types.AuditSink
	hooks     types.Hooks
	clock     types.Clock
	idGen     types.IDGenerator
	logger    types.Logger
}

// NewProgressionCreateCommand constructs the create handler.
func NewProgressionCreateCommand(cfg ProgressionCreateCommandConfig) *ProgressionCreateCommand {
	return &ProgressionCreateCommand{
		repo:      cfg.Repository,
		customers: cfg.Customers,
		validator: cfg.Validator,
		notifier:  cfg.Notifier,
		audit:     cfg.Audit,
		hooks:     safeHooks(cfg.Hooks),
		clock:     safeClock(cfg.Clock),
		idGen:     safeIDGen(cfg.IDGen),
		logger:    safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[ProgressionCreateInput] = (*ProgressionCreateCommand)(nil)

// Execute runs the create pipeline.
func (c *ProgressionCreateCommand) Execute(ctx context.Context, input ProgressionCreateInput) error {
	if c.repo == nil {
		return types.ErrMissingProgressionRepository
	}
	if c.customers == nil {
		return types.ErrMissingCustomerRepository
	}
	if c.validator == nil {
		return types.ErrMissingValidator
	}
	if err := input.Validate(); err != nil {
		return err
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
	if hasProgression {
		return types.ErrProgressionExists
	}

	progression := *input.Progression
	progression.ID = c.idGen.UUID()
	progression.CustomerID = input.CustomerID
	touchpoint := input.TouchpointID
	progression.LastModifiedTouchpointID = &touchpoint
	modified := now(c.clock)
	progression.LastModifiedDate = &modified
	if progression.CreatedBy == nil || strings.TrimSpace(*progression.CreatedBy) == "" {
		progression.CreatedBy = &touchpoint
	}

	if violations := c.validator.Validate(&progression); len(violations) > 0 {
		return types.NewValidationError(violations...)
	}

	created, err := c.repo.CreateProgression(ctx, &progression)
	if err != nil {
		return err
	}
	if created == nil {
		created = &progression
	}
	if input.Result != nil {
		*input.Result = *created
	}

	occurred := now(c.clock)
	if c.notifier != nil {
		_ = c.notifier.Dispatch(ctx, notifyEvent{
			customerID:    input.CustomerID,
			progressionID: created.ID,
			touchpointID:  input.TouchpointID,
			correlationID: input.CorrelationID,
			apiURL:        input.APIURL,
		})
	}
	recordAudit(ctx, c.audit, types.AuditRecord{
		CustomerID:    input.CustomerID,
		TouchpointID:  input.TouchpointID,
		Verb:          "create",
		ObjectType:    "learning_progression",
		ObjectID:      created.ID.String(),
		CorrelationID: input.CorrelationID,
		OccurredAt:    occurred,
	})
	emitProgressionHook(ctx, c.hooks, types.ProgressionEvent{
		CustomerID:    input.CustomerID,
		ProgressionID: created.ID,
		Action:        "created",
		TouchpointID:  input.TouchpointID,
		OccurredAt:    occurred,
		Progression:   created,
	})
	return nil
}
