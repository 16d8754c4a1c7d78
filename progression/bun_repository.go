package progression

import (
	"context"
	"encoding/json"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed progression document store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
}

type progressionStore interface {
	repository.Repository[*Record]
}

// Repository implements types.ProgressionRepository using Bun.
type Repository struct {
	progressionStore
	db    *bun.DB
	clock types.Clock
}

// NewRepository constructs the default progression repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	// The replace and existence paths issue raw bun queries, so a DB handle
	// is required even when a prebuilt repository is supplied.
	if cfg.DB == nil {
		return nil, errors.New("progression: db required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
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
	return &Repository{
		progressionStore: repo,
		db:               cfg.DB,
		clock:            clock,
	}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.ProgressionRepository    = (*Repository)(nil)
)

// GetDocument returns the raw stored document for (customer, record id).
func (r *Repository) GetDocument(ctx context.Context, customerID, progressionID uuid.UUID) ([]byte, error) {
	rec, err := r.find(ctx, customerID, progressionID)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), rec.Document...), nil
}

// GetProgression returns the typed resource parsed from the stored document.
func (r *Repository) GetProgression(ctx context.Context, customerID, progressionID uuid.UUID) (*types.LearningProgression, error) {
	rec, err := r.find(ctx, customerID, progressionID)
	if err != nil {
		return nil, err
	}
	return toDomain(rec)
}

// ListProgressions returns the customer's progression records newest first.
func (r *Repository) ListProgressions(ctx context.Context, customerID uuid.UUID, page types.Pagination) (types.ProgressionPage, error) {
	if customerID == uuid.Nil {
		return types.ProgressionPage{}, types.ErrCustomerIDRequired
	}
	pagination := normalizePagination(page, 20, 100)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("customer_id = ?", customerID).
				OrderExpr("created_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
		},
	}
	rows, total, err := r.List(ctx, criteria...)
	if err != nil {
		return types.ProgressionPage{}, err
	}
	progressions := make([]types.LearningProgression, 0, len(rows))
	for _, row := range rows {
		domain, err := toDomain(row)
		if err != nil {
			return types.ProgressionPage{}, err
		}
		progressions = append(progressions, *domain)
	}
	return types.ProgressionPage{
		Progressions: progressions,
		Total:        total,
		NextOffset:   pagination.Offset + pagination.Limit,
		HasMore:      pagination.Offset+pagination.Limit < total,
	}, nil
}

// HasProgression reports whether the customer holds any progression record.
func (r *Repository) HasProgression(ctx context.Context, customerID uuid.UUID) (bool, error) {
	if customerID == uuid.Nil {
		return false, types.ErrCustomerIDRequired
	}
	count, err := r.db.NewSelect().
		Model((*Record)(nil)).
		Where("customer_id = ?", customerID).
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProgression inserts a new document row built from the resource.
func (r *Repository) CreateProgression(ctx context.Context, progression *types.LearningProgression) (*types.LearningProgression, error) {
	if progression == nil {
		return nil, types.ErrProgressionRequired
	}
	if progression.CustomerID == uuid.Nil {
		return nil, types.ErrCustomerIDRequired
	}
	rec, err := fromDomain(progression)
	if err != nil {
		return nil, err
	}
	now := r.clock.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if progression.LastModifiedTouchpointID != nil {
		rec.UpdatedBy = *progression.LastModifiedTouchpointID
	}
	created, err := r.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created)
}

// ReplaceDocument swaps the stored document wholesale, reporting whether a
// row matched. Rows-affected is the only confirmation; there is no version
// compare-and-swap, so concurrent replacers race last-write-wins.
func (r *Repository) ReplaceDocument(ctx context.Context, customerID, progressionID uuid.UUID, document []byte) (bool, error) {
	if customerID == uuid.Nil {
		return false, types.ErrCustomerIDRequired
	}
	if progressionID == uuid.Nil {
		return false, types.ErrProgressionIDRequired
	}
	res, err := r.db.NewUpdate().
		Model((*Record)(nil)).
		Set("document = ?", string(document)).
		Set("updated_at = ?", r.clock.Now()).
		Set("updated_by = ?", touchpointFromDocument(document)).
		Where("id = ?", progressionID).
		Where("customer_id = ?", customerID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *Repository) find(ctx context.Context, customerID, progressionID uuid.UUID) (*Record, error) {
	if customerID == uuid.Nil {
		return nil, types.ErrCustomerIDRequired
	}
	if progressionID == uuid.Nil {
		return nil, types.ErrProgressionIDRequired
	}
	rec, err := r.Get(ctx, selectID(progressionID), selectCustomer(customerID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, types.ErrProgressionNotFound
		}
		return nil, err
	}
	return rec, nil
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("id", "=", id.String())
}

func selectCustomer(customerID uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("customer_id", "=", customerID.String())
}

func fromDomain(progression *types.LearningProgression) (*Record, error) {
	document, err := json.Marshal(progression)
	if err != nil {
		return nil, err
	}
	return &Record{
		ID:         progression.ID,
		CustomerID: progression.CustomerID,
		Document:   document,
	}, nil
}

func toDomain(rec *Record) (*types.LearningProgression, error) {
	if rec == nil {
		return nil, types.ErrProgressionNotFound
	}
	var progression types.LearningProgression
	if len(rec.Document) > 0 {
		if err := json.Unmarshal(rec.Document, &progression); err != nil {
			return nil, types.ErrMalformedDocument
		}
	}
	if progression.ID == uuid.Nil {
		progression.ID = rec.ID
	}
	if progression.CustomerID == uuid.Nil {
		progression.CustomerID = rec.CustomerID
	}
	return &progression, nil
}

func touchpointFromDocument(document []byte) string {
	var shape struct {
		LastModifiedTouchpointID string `json:"LastModifiedTouchpointId"`
	}
	if err := json.Unmarshal(document, &shape); err != nil {
		return ""
	}
	return shape.LastModifiedTouchpointID
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
