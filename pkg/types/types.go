package types

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LearningStatus enumerates the current-learning-status codes accepted on a
// progression record.
type LearningStatus int

const (
	LearningStatusInLearning    LearningStatus = 1
	LearningStatusNotInLearning LearningStatus = 2
	LearningStatusTraineeship   LearningStatus = 3
)

// Valid reports whether the status is one of the defined codes.
func (s LearningStatus) Valid() bool {
	switch s {
	case LearningStatusInLearning, LearningStatusNotInLearning, LearningStatusTraineeship:
		return true
	}
	return false
}

// LearningHours enumerates the weekly learning-hours bands.
type LearningHours int

const (
	LearningHoursLessThanSixteen LearningHours = 1
	LearningHoursSixteenPlus     LearningHours = 2
)

// Valid reports whether the hours band is one of the defined codes.
func (h LearningHours) Valid() bool {
	switch h {
	case LearningHoursLessThanSixteen, LearningHoursSixteenPlus:
		return true
	}
	return false
}

// QualificationLevel enumerates qualification levels. Levels 0 through 8 map
// to the national framework; NoQualifications is a sentinel above them all.
type QualificationLevel int

const (
	QualificationLevelEntry  QualificationLevel = 0
	QualificationLevelOne    QualificationLevel = 1
	QualificationLevelTwo    QualificationLevel = 2
	QualificationLevelThree  QualificationLevel = 3
	QualificationLevelFour   QualificationLevel = 4
	QualificationLevelFive   QualificationLevel = 5
	QualificationLevelSix    QualificationLevel = 6
	QualificationLevelSeven  QualificationLevel = 7
	QualificationLevelEight  QualificationLevel = 8
	QualificationLevelNoQual QualificationLevel = 99
)

// Valid reports whether the level is one of the defined codes.
func (q QualificationLevel) Valid() bool {
	if q >= QualificationLevelEntry && q <= QualificationLevelEight {
		return true
	}
	return q == QualificationLevelNoQual
}

// LearningProgression is the stored progression document. JSON tags follow
// the persisted document's property names so documents round-trip without
// re-keying; only responses rename `id` to the public identifier.
type LearningProgression struct {
	ID                             uuid.UUID           `json:"id"`
	CustomerID                     uuid.UUID           `json:"CustomerId"`
	DateProgressionRecorded        *time.Time          `json:"DateProgressionRecorded,omitempty"`
	CurrentLearningStatus          *LearningStatus     `json:"CurrentLearningStatus,omitempty"`
	LearningHours                  *LearningHours      `json:"LearningHours,omitempty"`
	DateLearningStarted            *time.Time          `json:"DateLearningStarted,omitempty"`
	CurrentQualificationLevel      *QualificationLevel `json:"CurrentQualificationLevel,omitempty"`
	DateQualificationLevelAchieved *time.Time          `json:"DateQualificationLevelAchieved,omitempty"`
	LastLearningProvidersUKPRN     *string             `json:"LastLearningProvidersUKPRN,omitempty"`
	LastModifiedDate               *time.Time          `json:"LastModifiedDate,omitempty"`
	LastModifiedTouchpointID       *string             `json:"LastModifiedTouchpointId,omitempty"`
	CreatedBy                      *string             `json:"CreatedBy,omitempty"`
}

// ProgressionPatch is the sparse partial-update payload. Every field is a
// pointer; nil means "leave the stored value unchanged".
type ProgressionPatch struct {
	ID                             *uuid.UUID          `json:"id,omitempty"`
	CustomerID                     *uuid.UUID          `json:"CustomerId,omitempty"`
	DateProgressionRecorded        *time.Time          `json:"DateProgressionRecorded,omitempty"`
	CurrentLearningStatus          *LearningStatus     `json:"CurrentLearningStatus,omitempty"`
	LearningHours                  *LearningHours      `json:"LearningHours,omitempty"`
	DateLearningStarted            *time.Time          `json:"DateLearningStarted,omitempty"`
	CurrentQualificationLevel      *QualificationLevel `json:"CurrentQualificationLevel,omitempty"`
	DateQualificationLevelAchieved *time.Time          `json:"DateQualificationLevelAchieved,omitempty"`
	LastLearningProvidersUKPRN     *string             `json:"LastLearningProvidersUKPRN,omitempty"`
	LastModifiedDate               *time.Time          `json:"LastModifiedDate,omitempty"`
	LastModifiedTouchpointID       *string             `json:"LastModifiedTouchpointId,omitempty"`
	CreatedBy                      *string             `json:"CreatedBy,omitempty"`
}

// ProgressionFields is the shared field contract implemented by both the
// resource and its patch shape. The validation engine depends only on this
// interface so creation and post-merge validation run the same rules.
type ProgressionFields interface {
	GetCustomerID() uuid.UUID
	GetDateProgressionRecorded() *time.Time
	GetCurrentLearningStatus() *LearningStatus
	GetLearningHours() *LearningHours
	GetDateLearningStarted() *time.Time
	GetCurrentQualificationLevel() *QualificationLevel
	GetDateQualificationLevelAchieved() *time.Time
	GetLastLearningProvidersUKPRN() *string
}

// PatchOutcome labels the terminal state of a patch request. Hosts can tell
// the no-op and not-found cases apart even though the HTTP contract collapses
// them to the same status code.
type PatchOutcome string

const (
	PatchOutcomeUpdated     PatchOutcome = "updated"
	PatchOutcomeNoop        PatchOutcome = "noop"
	PatchOutcomeNotFound    PatchOutcome = "not_found"
	PatchOutcomeNotReplaced PatchOutcome = "not_replaced"
)

// PatchResult carries the orchestrator output back to the caller.
type PatchResult struct {
	Outcome     PatchOutcome
	Progression *LearningProgression
	// Document is the merged stored document with the internal `id` key
	// renamed to `LearningProgressionId`, ready for response bodies.
	Document map[string]any
}

// Pagination bounds list queries.
type Pagination struct {
	Limit  int
	Offset int
}

// ProgressionPage is a paginated list result.
type ProgressionPage struct {
	Progressions []LearningProgression
	Total        int
	NextOffset   int
	HasMore      bool
}

// ProgressionEvent is emitted after create/patch mutations complete.
type ProgressionEvent struct {
	CustomerID    uuid.UUID
	ProgressionID uuid.UUID
	Action        string
	TouchpointID  string
	OccurredAt    time.Time
	Progression   *LearningProgression
}

// AuditRecord describes a mutation entry written to the audit trail.
type AuditRecord struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	TouchpointID  string
	Verb          string
	ObjectType    string
	ObjectID      string
	CorrelationID string
	Data          map[string]any
	OccurredAt    time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterProgressionChange func(context.Context, ProgressionEvent)
	AfterAudit             func(context.Context, AuditRecord)
}

// NotificationMessage is the payload handed to the queue collaborator after a
// successful write.
type NotificationMessage struct {
	CustomerID    uuid.UUID      `json:"CustomerId"`
	ProgressionID uuid.UUID      `json:"LearningProgressionId"`
	TouchpointID  string         `json:"TouchpointId"`
	CorrelationID string         `json:"CorrelationId,omitempty"`
	Channel       string         `json:"Channel,omitempty"`
	ResourceURL   string         `json:"ResourceUrl"`
	SignedLink    string         `json:"SignedLink,omitempty"`
	OccurredAt    time.Time      `json:"OccurredAt"`
	Resource      map[string]any `json:"Resource,omitempty"`
}

// ProgressionRepository persists progression documents. GetDocument and
// ReplaceDocument move raw JSON so unknown/legacy fields in stored documents
// survive patch round trips untouched.
type ProgressionRepository interface {
	GetDocument(ctx context.Context, customerID, progressionID uuid.UUID) ([]byte, error)
	GetProgression(ctx context.Context, customerID, progressionID uuid.UUID) (*LearningProgression, error)
	ListProgressions(ctx context.Context, customerID uuid.UUID, page Pagination) (ProgressionPage, error)
	HasProgression(ctx context.Context, customerID uuid.UUID) (bool, error)
	CreateProgression(ctx context.Context, progression *LearningProgression) (*LearningProgression, error)
	// ReplaceDocument swaps the stored document wholesale and reports whether
	// a row was found and replaced. Last write wins; there is no version gate.
	ReplaceDocument(ctx context.Context, customerID, progressionID uuid.UUID, document []byte) (bool, error)
}

// CustomerRepository answers the existence and read-only gates.
type CustomerRepository interface {
	CustomerExists(ctx context.Context, customerID uuid.UUID) (bool, error)
	CustomerIsReadOnly(ctx context.Context, customerID uuid.UUID) (bool, error)
}

// NotificationQueue is the fire-and-forget side channel notified after writes.
type NotificationQueue interface {
	Send(ctx context.Context, message NotificationMessage) error
}

// AuditSink receives sanitized mutation records.
type AuditSink interface {
	Record(ctx context.Context, record AuditRecord) error
}

// AuditRepository exposes read-side access to the audit trail.
type AuditRepository interface {
	ListAudit(ctx context.Context, filter AuditFilter) (AuditPage, error)
}

// AuditFilter narrows audit feed queries.
type AuditFilter struct {
	CustomerID uuid.UUID
	Verbs      []string
	Since      *time.Time
	Until      *time.Time
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (AuditFilter) Type() string {
	return "query.progression.audit"
}

// Validate implements gocommand.Message.
func (filter AuditFilter) Validate() error {
	if filter.CustomerID == uuid.Nil {
		return ErrCustomerIDRequired
	}
	return nil
}

// AuditPage is a paginated audit feed response.
type AuditPage struct {
	Records    []AuditRecord
	Total      int
	NextOffset int
	HasMore    bool
}

// NotificationSettings is the effective per-customer notification config.
type NotificationSettings struct {
	Enabled bool
	Channel string
}

// NotificationSettingsResolver resolves effective notification settings for a
// customer, layering stored overrides on top of system defaults.
type NotificationSettingsResolver interface {
	NotificationSettings(ctx context.Context, customerID uuid.UUID) (NotificationSettings, error)
}

// SecureLinkManager mirrors the external securelink manager interface.
type SecureLinkManager interface {
	Generate(route string, payloads ...SecureLinkPayload) (string, error)
	Validate(token string) (map[string]any, error)
	GetExpiration() time.Duration
}

// SecureLinkPayload carries data to embed in a secure link token.
type SecureLinkPayload map[string]any

// SecureLinkConfigurator mirrors the external securelink configurator interface.
type SecureLinkConfigurator interface {
	GetSigningKey() string
	GetExpiration() time.Duration
	GetBaseURL() string
	GetQueryKey() string
	GetRoutes() map[string]string
	GetAsQuery() bool
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}
