package service_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/go-progressions/command"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/learnpath/go-progressions/query"
	"github.com/learnpath/go-progressions/service"
)

// memProgressionStore keeps documents keyed by customer so cross-customer
// reads behave like the scoped SQL queries in the bun repository.
type memProgressionStore struct {
	docs map[uuid.UUID][]byte
	ids  map[uuid.UUID]uuid.UUID
}

func newMemProgressionStore() *memProgressionStore {
	return &memProgressionStore{
		docs: make(map[uuid.UUID][]byte),
		ids:  make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *memProgressionStore) GetDocument(_ context.Context, customerID, progressionID uuid.UUID) ([]byte, error) {
	if s.ids[customerID] != progressionID {
		return nil, types.ErrProgressionNotFound
	}
	doc, ok := s.docs[customerID]
	if !ok {
		return nil, types.ErrProgressionNotFound
	}
	return append([]byte(nil), doc...), nil
}

func (s *memProgressionStore) GetProgression(ctx context.Context, customerID, progressionID uuid.UUID) (*types.LearningProgression, error) {
	doc, err := s.GetDocument(ctx, customerID, progressionID)
	if err != nil {
		return nil, err
	}
	var record types.LearningProgression
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *memProgressionStore) ListProgressions(ctx context.Context, customerID uuid.UUID, _ types.Pagination) (types.ProgressionPage, error) {
	id, ok := s.ids[customerID]
	if !ok {
		return types.ProgressionPage{}, nil
	}
	record, err := s.GetProgression(ctx, customerID, id)
	if err != nil {
		return types.ProgressionPage{}, err
	}
	return types.ProgressionPage{
		Progressions: []types.LearningProgression{*record},
		Total:        1,
	}, nil
}

func (s *memProgressionStore) HasProgression(_ context.Context, customerID uuid.UUID) (bool, error) {
	_, ok := s.ids[customerID]
	return ok, nil
}

func (s *memProgressionStore) CreateProgression(_ context.Context, progression *types.LearningProgression) (*types.LearningProgression, error) {
	doc, err := json.Marshal(progression)
	if err != nil {
		return nil, err
	}
	s.docs[progression.CustomerID] = doc
	s.ids[progression.CustomerID] = progression.ID
	return progression, nil
}

func (s *memProgressionStore) ReplaceDocument(_ context.Context, customerID, progressionID uuid.UUID, doc []byte) (bool, error) {
	if s.ids[customerID] != progressionID {
		return false, nil
	}
	s.docs[customerID] = append([]byte(nil), doc...)
	return true, nil
}

type memCustomerDirectory struct {
	known map[uuid.UUID]bool
}

func (d memCustomerDirectory) CustomerExists(_ context.Context, id uuid.UUID) (bool, error) {
	return d.known[id], nil
}

func (d memCustomerDirectory) CustomerIsReadOnly(context.Context, uuid.UUID) (bool, error) {
	return false, nil
}

func TestService_CustomerIsolation(t *testing.T) {
	ctx := context.Background()
	customerA := uuid.New()
	customerB := uuid.New()

	store := newMemProgressionStore()
	svc := service.New(service.Config{
		Progressions: store,
		Customers:    memCustomerDirectory{known: map[uuid.UUID]bool{customerA: true, customerB: true}},
	})

	recorded := time.Now().UTC().Add(-24 * time.Hour)
	status := types.LearningStatusNotInLearning
	level := types.QualificationLevelNoQual

	created := &types.LearningProgression{}
	err := svc.Commands().ProgressionCreate.Execute(ctx, command.ProgressionCreateInput{
		CustomerID: customerA,
		Progression: &types.LearningProgression{
			DateProgressionRecorded:   &recorded,
			CurrentLearningStatus:     &status,
			CurrentQualificationLevel: &level,
		},
		TouchpointID: "9000000001",
		APIURL:       "https://api.example.com",
		Result:       created,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	require.Equal(t, customerA, created.CustomerID)

	// Customer A sees the record.
	got, err := svc.Queries().ProgressionDetail.Query(ctx, query.ProgressionDetailFilter{
		CustomerID:    customerA,
		ProgressionID: created.ID,
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)

	// Customer B cannot read it, even with the right progression id.
	_, err = svc.Queries().ProgressionDetail.Query(ctx, query.ProgressionDetailFilter{
		CustomerID:    customerB,
		ProgressionID: created.ID,
	})
	require.ErrorIs(t, err, types.ErrProgressionNotFound)

	page, err := svc.Queries().ProgressionList.Query(ctx, query.ProgressionListFilter{
		CustomerID: customerB,
		Pagination: types.Pagination{Limit: 10},
	})
	require.NoError(t, err)
	require.Zero(t, page.Total)

	// Patching through the wrong customer resolves to not found, not an error.
	inLearning := types.LearningStatusInLearning
	started := recorded.Add(time.Hour)
	result := &types.PatchResult{}
	err = svc.Commands().ProgressionPatch.Execute(ctx, command.ProgressionPatchInput{
		CustomerID:    customerB,
		ProgressionID: created.ID,
		Patch: &types.ProgressionPatch{
			CurrentLearningStatus: &inLearning,
			DateLearningStarted:   &started,
		},
		TouchpointID: "9000000002",
		APIURL:       "https://api.example.com",
		Result:       result,
	})
	require.NoError(t, err)
	require.Equal(t, types.PatchOutcomeNotFound, result.Outcome)

	// The owning customer's patch lands.
	result = &types.PatchResult{}
	err = svc.Commands().ProgressionPatch.Execute(ctx, command.ProgressionPatchInput{
		CustomerID:    customerA,
		ProgressionID: created.ID,
		Patch: &types.ProgressionPatch{
			CurrentLearningStatus: &inLearning,
			DateLearningStarted:   &started,
		},
		TouchpointID: "9000000002",
		APIURL:       "https://api.example.com",
		Result:       result,
	})
	require.NoError(t, err)
	require.Equal(t, types.PatchOutcomeUpdated, result.Outcome)
	require.Equal(t, types.LearningStatusInLearning, *result.Progression.CurrentLearningStatus)
}
