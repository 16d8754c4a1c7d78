package query_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/learnpath/go-progressions/query"
)

type stubRepo struct {
	progression *types.LearningProgression
	page        types.ProgressionPage

	gotCustomer    uuid.UUID
	gotProgression uuid.UUID
	gotPagination  types.Pagination
}

func (s *stubRepo) GetDocument(context.Context, uuid.UUID, uuid.UUID) ([]byte, error) {
	return nil, types.ErrProgressionNotFound
}

func (s *stubRepo) GetProgression(_ context.Context, customerID, progressionID uuid.UUID) (*types.LearningProgression, error) {
	s.gotCustomer = customerID
	s.gotProgression = progressionID
	if s.progression == nil {
		return nil, types.ErrProgressionNotFound
	}
	return s.progression, nil
}

func (s *stubRepo) ListProgressions(_ context.Context, customerID uuid.UUID, page types.Pagination) (types.ProgressionPage, error) {
	s.gotCustomer = customerID
	s.gotPagination = page
	return s.page, nil
}

func (s *stubRepo) HasProgression(context.Context, uuid.UUID) (bool, error) {
	return s.progression != nil, nil
}

func (s *stubRepo) CreateProgression(_ context.Context, progression *types.LearningProgression) (*types.LearningProgression, error) {
	return progression, nil
}

func (s *stubRepo) ReplaceDocument(context.Context, uuid.UUID, uuid.UUID, []byte) (bool, error) {
	return false, nil
}

func TestProgressionDetailQuery(t *testing.T) {
	customerID := uuid.New()
	progressionID := uuid.New()
	repo := &stubRepo{progression: &types.LearningProgression{ID: progressionID, CustomerID: customerID}}

	q := query.NewProgressionDetailQuery(repo)
	got, err := q.Query(context.Background(), query.ProgressionDetailFilter{
		CustomerID:    customerID,
		ProgressionID: progressionID,
	})
	require.NoError(t, err)
	require.Equal(t, progressionID, got.ID)
	require.Equal(t, customerID, repo.gotCustomer)
}

func TestProgressionDetailQueryValidation(t *testing.T) {
	q := query.NewProgressionDetailQuery(&stubRepo{})

	_, err := q.Query(context.Background(), query.ProgressionDetailFilter{ProgressionID: uuid.New()})
	require.ErrorIs(t, err, types.ErrCustomerIDRequired)

	_, err = q.Query(context.Background(), query.ProgressionDetailFilter{CustomerID: uuid.New()})
	require.ErrorIs(t, err, types.ErrProgressionIDRequired)
}

func TestProgressionDetailQueryMissingRepository(t *testing.T) {
	q := query.NewProgressionDetailQuery(nil)
	_, err := q.Query(context.Background(), query.ProgressionDetailFilter{
		CustomerID:    uuid.New(),
		ProgressionID: uuid.New(),
	})
	require.ErrorIs(t, err, types.ErrMissingProgressionRepository)
}

func TestProgressionListQuery(t *testing.T) {
	customerID := uuid.New()
	repo := &stubRepo{page: types.ProgressionPage{Total: 1}}

	q := query.NewProgressionListQuery(repo)
	page, err := q.Query(context.Background(), query.ProgressionListFilter{
		CustomerID: customerID,
		Pagination: types.Pagination{Limit: 5, Offset: 10},
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	require.Equal(t, 5, repo.gotPagination.Limit)
	require.Equal(t, 10, repo.gotPagination.Offset)
}

func TestProgressionListQueryValidation(t *testing.T) {
	q := query.NewProgressionListQuery(&stubRepo{})
	_, err := q.Query(context.Background(), query.ProgressionListFilter{})
	require.ErrorIs(t, err, types.ErrCustomerIDRequired)
}

type stubAuditRepo struct {
	page types.AuditPage
	got  types.AuditFilter
}

func (s *stubAuditRepo) ListAudit(_ context.Context, filter types.AuditFilter) (types.AuditPage, error) {
	s.got = filter
	return s.page, nil
}

func TestAuditFeedQuery(t *testing.T) {
	customerID := uuid.New()
	repo := &stubAuditRepo{page: types.AuditPage{Total: 3}}

	q := query.NewAuditFeedQuery(repo)
	page, err := q.Query(context.Background(), types.AuditFilter{CustomerID: customerID})
	require.NoError(t, err)
	require.Equal(t, 3, page.Total)
	require.Equal(t, customerID, repo.got.CustomerID)
}

func TestAuditFeedQueryValidation(t *testing.T) {
	q := query.NewAuditFeedQuery(&stubAuditRepo{})
	_, err := q.Query(context.Background(), types.AuditFilter{})
	require.ErrorIs(t, err, types.ErrCustomerIDRequired)

	q = query.NewAuditFeedQuery(nil)
	_, err = q.Query(context.Background(), types.AuditFilter{CustomerID: uuid.New()})
	require.ErrorIs(t, err, types.ErrMissingAuditRepository)
}
