package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/learnpath/go-progressions/pkg/types"
)

// AuditFeedQuery renders the per-customer mutation trail for hosts.
type AuditFeedQuery struct {
	repo types.AuditRepository
}

// NewAuditFeedQuery constructs the audit feed helper.
func NewAuditFeedQuery(repo types.AuditRepository) *AuditFeedQuery {
	return &AuditFeedQuery{repo: repo}
}

var _ gocommand.Querier[types.AuditFilter, types.AuditPage] = (*AuditFeedQuery)(nil)

// Query fetches a page of audit records via the injected repository.
func (q *AuditFeedQuery) Query(ctx context.Context, filter types.AuditFilter) (types.AuditPage, error) {
	if q.repo == nil {
		return types.AuditPage{}, types.ErrMissingAuditRepository
	}
	if err := filter.Validate(); err != nil {
		return types.AuditPage{}, err
	}
	return q.repo.ListAudit(ctx, filter)
}
