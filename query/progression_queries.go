package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

// ProgressionDetailFilter identifies a single progression record.
type ProgressionDetailFilter struct {
	CustomerID    uuid.UUID
	ProgressionID uuid.UUID
}

// Type implements gocommand.Message for query inputs.
func (ProgressionDetailFilter) Type() string {
	return "query.progression.detail"
}

// Validate implements gocommand.Message.
func (filter ProgressionDetailFilter) Validate() error {
	if filter.CustomerID == uuid.Nil {
		return types.ErrCustomerIDRequired
	}
	if filter.ProgressionID == uuid.Nil {
		return types.ErrProgressionIDRequired
	}
	return nil
}

// ProgressionDetailQuery fetches one progression by (customer, record id).
type ProgressionDetailQuery struct {
	repo types.ProgressionRepository
}

// NewProgressionDetailQuery constructs the detail query helper.
func NewProgressionDetailQuery(repo types.ProgressionRepository) *ProgressionDetailQuery {
	return &ProgressionDetailQuery{repo: repo}
}

var _ gocommand.Querier[ProgressionDetailFilter, *types.LearningProgression] = (*ProgressionDetailQuery)(nil)

// Query returns the progression or types.ErrProgressionNotFound.
func (q *ProgressionDetailQuery) Query(ctx context.Context, filter ProgressionDetailFilter) (*types.LearningProgression, error) {
	if q.repo == nil {
		return nil, types.ErrMissingProgressionRepository
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return q.repo.GetProgression(ctx, filter.CustomerID, filter.ProgressionID)
}

// ProgressionListFilter narrows the per-customer listing.
type ProgressionListFilter struct {
	CustomerID uuid.UUID
	Pagination types.Pagination
}

// Type implements gocommand.Message for query inputs.
func (ProgressionListFilter) Type() string {
	return "query.progression.list"
}

// Validate implements gocommand.Message.
func (filter ProgressionListFilter) Validate() error {
	if filter.CustomerID == uuid.Nil {
		return types.ErrCustomerIDRequired
	}
	return nil
}

// ProgressionListQuery lists a customer's progression records.
type ProgressionListQuery struct {
	repo types.ProgressionRepository
}

// NewProgressionListQuery constructs the list query helper.
func NewProgressionListQuery(repo types.ProgressionRepository) *ProgressionListQuery {
	return &ProgressionListQuery{repo: repo}
}

var _ gocommand.Querier[ProgressionListFilter, types.ProgressionPage] = (*ProgressionListQuery)(nil)

// Query returns the customer's progression page.
func (q *ProgressionListQuery) Query(ctx context.Context, filter ProgressionListFilter) (types.ProgressionPage, error) {
	if q.repo == nil {
		return types.ProgressionPage{}, types.ErrMissingProgressionRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ProgressionPage{}, err
	}
	return q.repo.ListProgressions(ctx, filter.CustomerID, filter.Pagination)
}
