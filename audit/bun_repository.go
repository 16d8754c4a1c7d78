package audit

import (
	"context"
	"errors"

	"github.com/goliatone/go-masker"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed audit store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
	Masker     *masker.Masker
}

type auditStore interface {
	repository.Repository[*LogEntry]
}

// Repository is both the write-side AuditSink and the read-side feed store.
type Repository struct {
	auditStore
	clock types.Clock
	idGen types.IDGenerator
	mask  *masker.Masker
}

// NewRepository constructs the default audit repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("audit: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(rec *LogEntry) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *LogEntry, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	mask := cfg.Masker
	if mask == nil {
		mask = DefaultMasker()
	}
	return &Repository{
		auditStore: repo,
		clock:      clock,
		idGen:      idGen,
		mask:       mask,
	}, nil
}

var (
	_ types.AuditSink       = (*Repository)(nil)
	_ types.AuditRepository = (*Repository)(nil)
)

// Record sanitizes and persists a mutation entry.
func (r *Repository) Record(ctx context.Context, record types.AuditRecord) error {
	sanitized := SanitizeRecord(r.mask, record)
	entry := toLogEntry(sanitized)
	if entry.ID == uuid.Nil {
		entry.ID = r.idGen.UUID()
	}
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = r.clock.Now()
	}
	entry.CreatedAt = r.clock.Now()
	_, err := r.Create(ctx, entry)
	return err
}

// ListAudit returns a paginated feed filtered by the supplied criteria.
func (r *Repository) ListAudit(ctx context.Context, filter types.AuditFilter) (types.AuditPage, error) {
	if filter.CustomerID == uuid.Nil {
		return types.AuditPage{}, types.ErrCustomerIDRequired
	}
	pagination := normalizePagination(filter.Pagination, 50, 200)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("customer_id = ?", filter.CustomerID).
				OrderExpr("occurred_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			if len(filter.Verbs) > 0 {
				q = q.Where("verb IN (?)", bun.In(filter.Verbs))
			}
			if filter.Since != nil {
				q = q.Where("occurred_at >= ?", *filter.Since)
			}
			if filter.Until != nil {
				q = q.Where("occurred_at <= ?", *filter.Until)
			}
			return q
		},
	}
	rows, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.AuditPage{}, err
	}
	records := make([]types.AuditRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toAuditRecord(row))
	}
	return types.AuditPage{
		Records:    records,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func normalizePagination(page types.Pagination, def, max int) types.Pagination {
	if page.Limit <= 0 {
		page.Limit = def
	}
	if page.Limit > max {
		page.Limit = max
	}
	if page.Offset < 0 {
		page.Offset = 0
	}
	return page
}
