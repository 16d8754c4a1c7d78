package command_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/go-progressions/command"
	"github.com/learnpath/go-progressions/merge"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/learnpath/go-progressions/validation"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type stubProgressionRepo struct {
	customerID    uuid.UUID
	progressionID uuid.UUID
	document      []byte

	replaceReturns bool
	replacedWith   []byte
	created        *types.LearningProgression
}

func (s *stubProgressionRepo) GetDocument(_ context.Context, customerID, progressionID uuid.UUID) ([]byte, error) {
	if s.document == nil || customerID != s.customerID || progressionID != s.progressionID {
		return nil, types.ErrProgressionNotFound
	}
	return s.document, nil
}

func (s *stubProgressionRepo) GetProgression(ctx context.Context, customerID, progressionID uuid.UUID) (*types.LearningProgression, error) {
	doc, err := s.GetDocument(ctx, customerID, progressionID)
	if err != nil {
		return nil, err
	}
	var progression types.LearningProgression
	if err := json.Unmarshal(doc, &progression); err != nil {
		return nil, err
	}
	return &progression, nil
}

func (s *stubProgressionRepo) ListProgressions(context.Context, uuid.UUID, types.Pagination) (types.ProgressionPage, error) {
	return types.ProgressionPage{}, nil
}

func (s *stubProgressionRepo) HasProgression(_ context.Context, customerID uuid.UUID) (bool, error) {
	return s.document != nil && customerID == s.customerID, nil
}

func (s *stubProgressionRepo) CreateProgression(_ context.Context, progression *types.LearningProgression) (*types.LearningProgression, error) {
	doc, err := json.Marshal(progression)
	if err != nil {
		return nil, err
	}
	s.customerID = progression.CustomerID
	s.progressionID = progression.ID
	s.document = doc
	s.created = progression
	return progression, nil
}

func (s *stubProgressionRepo) ReplaceDocument(_ context.Context, customerID, progressionID uuid.UUID, document []byte) (bool, error) {
	if !s.replaceReturns {
		return false, nil
	}
	s.replacedWith = document
	s.document = document
	return true, nil
}

type stubCustomerRepo struct {
	exists   bool
	readOnly bool
}

func (s *stubCustomerRepo) CustomerExists(context.Context, uuid.UUID) (bool, error) {
	return s.exists, nil
}

func (s *stubCustomerRepo) CustomerIsReadOnly(context.Context, uuid.UUID) (bool, error) {
	return s.readOnly, nil
}

type stubQueue struct {
	messages []types.NotificationMessage
}

func (s *stubQueue) Send(_ context.Context, message types.NotificationMessage) error {
	s.messages = append(s.messages, message)
	return nil
}

type stubAudit struct {
	records []types.AuditRecord
}

func (s *stubAudit) Record(_ context.Context, record types.AuditRecord) error {
	s.records = append(s.records, record)
	return nil
}

type patchFixture struct {
	repo      *stubProgressionRepo
	customers *stubCustomerRepo
	queue     *stubQueue
	audit     *stubAudit
	cmd       *command.ProgressionPatchCommand

	customerID    uuid.UUID
	progressionID uuid.UUID
}

func newPatchFixture(t *testing.T) *patchFixture {
	t.Helper()
	customerID := uuid.New()
	progressionID := uuid.New()

	recorded := testNow.Add(-48 * time.Hour)
	document, err := json.Marshal(map[string]any{
		"id":                        progressionID,
		"CustomerId":                customerID,
		"DateProgressionRecorded":   recorded,
		"CurrentLearningStatus":     2,
		"CurrentQualificationLevel": 99,
		"LegacyReference":           "ABC-123",
	})
	require.NoError(t, err)

	repo := &stubProgressionRepo{
		customerID:     customerID,
		progressionID:  progressionID,
		document:       document,
		replaceReturns: true,
	}
	customers := &stubCustomerRepo{exists: true}
	q := &stubQueue{}
	audit := &stubAudit{}

	cmd := command.NewProgressionPatchCommand(command.ProgressionPatchCommandConfig{
		Repository: repo,
		Customers:  customers,
		Merger:     merge.NewEngine(),
		Validator:  validation.NewEngine(validation.EngineConfig{Clock: fixedClock{now: testNow}}),
		Notifier:   command.NewNotifier(command.NotifierConfig{Queue: q, Clock: fixedClock{now: testNow}}),
		Audit:      audit,
		Clock:      fixedClock{now: testNow},
	})

	return &patchFixture{
		repo:          repo,
		customers:     customers,
		queue:         q,
		audit:         audit,
		cmd:           cmd,
		customerID:    customerID,
		progressionID: progressionID,
	}
}

func (f *patchFixture) input(patch *types.ProgressionPatch, result *types.PatchResult) command.ProgressionPatchInput {
	return command.ProgressionPatchInput{
		CustomerID:    f.customerID,
		ProgressionID: f.progressionID,
		Patch:         patch,
		TouchpointID:  "9000000002",
		APIURL:        "https://api.example.com",
		CorrelationID: "corr-1",
		Result:        result,
	}
}

func TestProgressionPatchRequiresTouchpoint(t *testing.T) {
	f := newPatchFixture(t)
	input := f.input(&types.ProgressionPatch{}, nil)
	input.TouchpointID = " "
	require.ErrorIs(t, f.cmd.Execute(context.Background(), input), command.ErrTouchpointRequired)
}

func TestProgressionPatchRequiresAPIURL(t *testing.T) {
	f := newPatchFixture(t)
	input := f.input(&types.ProgressionPatch{}, nil)
	input.APIURL = ""
	require.ErrorIs(t, f.cmd.Execute(context.Background(), input), command.ErrAPIURLRequired)
}

func TestProgressionPatchNilPatchIsNoop(t *testing.T) {
	f := newPatchFixture(t)
	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(nil, result)))
	require.Equal(t, types.PatchOutcomeNoop, result.Outcome)
	require.Empty(t, f.queue.messages)
	require.Empty(t, f.audit.records)
}

func TestProgressionPatchReadOnlyCustomer(t *testing.T) {
	f := newPatchFixture(t)
	f.customers.readOnly = true
	err := f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{}, nil))
	require.ErrorIs(t, err, types.ErrCustomerReadOnly)
}

func TestProgressionPatchUnknownCustomer(t *testing.T) {
	f := newPatchFixture(t)
	f.customers.exists = false
	err := f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{}, nil))
	require.ErrorIs(t, err, types.ErrCustomerNotFound)
}

func TestProgressionPatchMissingProgression(t *testing.T) {
	f := newPatchFixture(t)
	f.repo.document = nil
	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{}, result)))
	require.Equal(t, types.PatchOutcomeNotFound, result.Outcome)
}

func TestProgressionPatchMalformedStoredDocument(t *testing.T) {
	f := newPatchFixture(t)
	f.repo.document = []byte(`{broken`)
	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{}, result)))
	require.Equal(t, types.PatchOutcomeNotFound, result.Outcome)
}

func TestProgressionPatchValidationFailure(t *testing.T) {
	f := newPatchFixture(t)
	status := types.LearningStatusInLearning
	err := f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		CurrentLearningStatus: &status,
	}, nil))

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	require.Contains(t, fields, "DateLearningStarted")
	require.Nil(t, f.repo.replacedWith)
}

func TestProgressionPatchNotReplaced(t *testing.T) {
	f := newPatchFixture(t)
	f.repo.replaceReturns = false
	hours := types.LearningHoursSixteenPlus
	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		LearningHours: &hours,
	}, result)))
	require.Equal(t, types.PatchOutcomeNotReplaced, result.Outcome)
	require.Empty(t, f.queue.messages)
}

func TestProgressionPatchSuccess(t *testing.T) {
	f := newPatchFixture(t)
	status := types.LearningStatusInLearning
	started := testNow.Add(-12 * time.Hour)
	hours := types.LearningHoursSixteenPlus
	bodyTouchpoint := "1111111111"

	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		CurrentLearningStatus:    &status,
		DateLearningStarted:      &started,
		LearningHours:            &hours,
		LastModifiedTouchpointID: &bodyTouchpoint,
	}, result)))

	require.Equal(t, types.PatchOutcomeUpdated, result.Outcome)
	require.NotNil(t, result.Progression)
	require.Equal(t, f.customerID, result.Progression.CustomerID)
	require.Equal(t, status, *result.Progression.CurrentLearningStatus)

	// The request touchpoint wins over the one carried in the body.
	require.Equal(t, "9000000002", *result.Progression.LastModifiedTouchpointID)

	var stored map[string]any
	require.NoError(t, json.Unmarshal(f.repo.replacedWith, &stored))
	require.Equal(t, "9000000002", stored["LastModifiedTouchpointId"])
	// Unknown legacy fields survive the round trip.
	require.Equal(t, "ABC-123", stored["LegacyReference"])

	// Response document renames the internal id key.
	require.NotContains(t, result.Document, "id")
	require.Equal(t, f.progressionID.String(), result.Document["LearningProgressionId"])

	require.Len(t, f.queue.messages, 1)
	require.Equal(t, f.customerID, f.queue.messages[0].CustomerID)
	require.Equal(t, f.progressionID, f.queue.messages[0].ProgressionID)

	require.Len(t, f.audit.records, 1)
	require.Equal(t, "patch", f.audit.records[0].Verb)
	require.Equal(t, f.progressionID.String(), f.audit.records[0].ObjectID)
}

func TestProgressionPatchCannotMoveDocumentToAnotherCustomer(t *testing.T) {
	f := newPatchFixture(t)
	foreign := uuid.New()
	hours := types.LearningHoursSixteenPlus

	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		CustomerID:    &foreign,
		LearningHours: &hours,
	}, result)))

	require.Equal(t, types.PatchOutcomeUpdated, result.Outcome)
	require.Equal(t, f.customerID, result.Progression.CustomerID)

	// The stored document's customer key stays on the route customer.
	var stored map[string]any
	require.NoError(t, json.Unmarshal(f.repo.replacedWith, &stored))
	require.Equal(t, f.customerID.String(), stored["CustomerId"])
	require.Equal(t, f.customerID.String(), result.Document["CustomerId"])
}

func TestProgressionPatchDefaultsLastModifiedDate(t *testing.T) {
	f := newPatchFixture(t)
	hours := types.LearningHoursLessThanSixteen

	result := &types.PatchResult{}
	require.NoError(t, f.cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		LearningHours: &hours,
	}, result)))

	require.Equal(t, types.PatchOutcomeUpdated, result.Outcome)
	require.NotNil(t, result.Progression.LastModifiedDate)
	require.True(t, result.Progression.LastModifiedDate.Equal(testNow))
}

func TestProgressionPatchEmitsHook(t *testing.T) {
	f := newPatchFixture(t)
	var event types.ProgressionEvent
	cmd := command.NewProgressionPatchCommand(command.ProgressionPatchCommandConfig{
		Repository: f.repo,
		Customers:  f.customers,
		Merger:     merge.NewEngine(),
		Validator:  validation.NewEngine(validation.EngineConfig{Clock: fixedClock{now: testNow}}),
		Clock:      fixedClock{now: testNow},
		Hooks: types.Hooks{
			AfterProgressionChange: func(_ context.Context, evt types.ProgressionEvent) {
				event = evt
			},
		},
	})

	hours := types.LearningHoursSixteenPlus
	require.NoError(t, cmd.Execute(context.Background(), f.input(&types.ProgressionPatch{
		LearningHours: &hours,
	}, nil)))
	require.Equal(t, "patched", event.Action)
	require.Equal(t, f.progressionID, event.ProgressionID)
}
