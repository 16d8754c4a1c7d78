package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/learnpath/go-progressions/command"
	"github.com/learnpath/go-progressions/merge"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/learnpath/go-progressions/query"
	"github.com/learnpath/go-progressions/validation"
)

// Service is the entry point for go-progressions. It wires the repositories,
// queue, audit sink, and command/query facades supplied by the host
// application.
type Service struct {
	cfg       Config
	commands  Commands
	queries   Queries
	validator *validation.Engine
	merger    merge.Engine
	notifier  *command.Notifier
	auditRepo types.AuditRepository
}

// Commands exposes the service command handlers.
type Commands struct {
	ProgressionCreate *command.ProgressionCreateCommand
	ProgressionPatch  *command.ProgressionPatchCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	ProgressionDetail *query.ProgressionDetailQuery
	ProgressionList   *query.ProgressionListQuery
	AuditFeed         *query.AuditFeedQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB, cached repositories, queues, hooks, etc.).
type Config struct {
	Progressions    types.ProgressionRepository
	Customers       types.CustomerRepository
	Queue           types.NotificationQueue
	Audit           types.AuditSink
	AuditRepository types.AuditRepository
	Settings        types.NotificationSettingsResolver
	FeatureGate     featuregate.FeatureGate
	SecureLinks     types.SecureLinkManager
	Hooks           types.Hooks
	Clock           types.Clock
	IDGenerator     types.IDGenerator
	Logger          types.Logger
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)

	auditRepo := norm.AuditRepository
	if auditRepo == nil {
		if cast, ok := norm.Audit.(types.AuditRepository); ok {
			auditRepo = cast
		}
	}

	s := &Service{
		cfg:       norm,
		validator: validation.NewEngine(validation.EngineConfig{Clock: norm.Clock}),
		merger:    merge.NewEngine(),
		auditRepo: auditRepo,
	}
	s.notifier = command.NewNotifier(command.NotifierConfig{
		Queue:       norm.Queue,
		Settings:    norm.Settings,
		Gate:        norm.FeatureGate,
		SecureLinks: norm.SecureLinks,
		Clock:       norm.Clock,
		Logger:      norm.Logger,
	})
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Validator exposes the validation engine so transports can pre-validate
// payloads without invoking a command.
func (s *Service) Validator() *validation.Engine {
	if s == nil {
		return nil
	}
	return s.validator
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.Progressions != nil &&
		s.cfg.Customers != nil
}

// HealthCheck surfaces missing configuration so upstream transports
// (REST/jobs) can refuse traffic before the first request fails.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	if s.cfg.Progressions == nil {
		return types.ErrMissingProgressionRepository
	}
	if s.cfg.Customers == nil {
		return types.ErrMissingCustomerRepository
	}
	return nil
}

// AuditSink returns the configured sink so transports can emit audit records
// for auxiliary workflows.
func (s *Service) AuditSink() types.AuditSink {
	if s == nil {
		return nil
	}
	return s.cfg.Audit
}

func (s *Service) buildCommands() Commands {
	return Commands{
		ProgressionCreate: command.NewProgressionCreateCommand(command.ProgressionCreateCommandConfig{
			Repository: s.cfg.Progressions,
			Customers:  s.cfg.Customers,
			Validator:  s.validator,
			Notifier:   s.notifier,
			Audit:      s.cfg.Audit,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			IDGen:      s.cfg.IDGenerator,
			Logger:     s.cfg.Logger,
		}),
		ProgressionPatch: command.NewProgressionPatchCommand(command.ProgressionPatchCommandConfig{
			Repository: s.cfg.Progressions,
			Customers:  s.cfg.Customers,
			Merger:     s.merger,
			Validator:  s.validator,
			Notifier:   s.notifier,
			Audit:      s.cfg.Audit,
			Hooks:      s.cfg.Hooks,
			Clock:      s.cfg.Clock,
			Logger:     s.cfg.Logger,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	queries := Queries{
		ProgressionDetail: query.NewProgressionDetailQuery(s.cfg.Progressions),
		ProgressionList:   query.NewProgressionListQuery(s.cfg.Progressions),
	}
	if s.auditRepo != nil {
		queries.AuditFeed = query.NewAuditFeedQuery(s.auditRepo)
	}
	return queries
}
