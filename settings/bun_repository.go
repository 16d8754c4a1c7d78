package settings

import (
	"context"
	"errors"
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires dependencies for the Bun-backed settings store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

type settingStore interface {
	repository.Repository[*Record]
}

// Repository persists per-customer settings entries.
type Repository struct {
	settingStore
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default settings repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("settings: db or repository required")
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
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Repository{
		settingStore: repo,
		clock:        clock,
		idGen:        idGen,
	}, nil
}

var _ repository.Repository[*Record] = (*Repository)(nil)

// ListSettings fetches every settings entry stored for the customer.
func (r *Repository) ListSettings(ctx context.Context, customerID uuid.UUID) ([]Setting, error) {
	if customerID == uuid.Nil {
		return nil, types.ErrCustomerIDRequired
	}
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("customer_id = ?", customerID).
				OrderExpr("key ASC")
		},
	}
	rows, _, err := r.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	result := make([]Setting, 0, len(rows))
	for _, row := range rows {
		result = append(result, toDomain(row))
	}
	return result, nil
}

// UpsertSetting inserts or updates a settings entry keyed by (customer, key).
func (r *Repository) UpsertSetting(ctx context.Context, setting Setting) (*Setting, error) {
	if setting.CustomerID == uuid.Nil {
		return nil, types.ErrCustomerIDRequired
	}
	key := strings.TrimSpace(setting.Key)
	if key == "" {
		return nil, errors.New("settings: key required")
	}
	now := r.clock.Now()
	payload := fromDomain(setting)
	payload.Key = key

	existing, err := r.findExisting(ctx, setting.CustomerID, key)
	switch {
	case err == nil && existing != nil:
		payload.ID = existing.ID
		payload.CreatedAt = existing.CreatedAt
		payload.Version = existing.Version + 1
		payload.UpdatedAt = now
		updated, err := r.Update(ctx, payload)
		if err != nil {
			return nil, err
		}
		out := toDomain(updated)
		return &out, nil
	case repository.IsRecordNotFound(err):
		payload.ID = r.idGen.UUID()
		payload.Version = max(setting.Version, 1)
		payload.CreatedAt = now
		payload.UpdatedAt = now
		created, err := r.Create(ctx, payload)
		if err != nil {
			return nil, err
		}
		out := toDomain(created)
		return &out, nil
	default:
		return nil, err
	}
}

// DeleteSetting removes a settings entry.
func (r *Repository) DeleteSetting(ctx context.Context, customerID uuid.UUID, key string) error {
	existing, err := r.findExisting(ctx, customerID, strings.TrimSpace(key))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil
		}
		return err
	}
	return r.Delete(ctx, existing)
}

func (r *Repository) findExisting(ctx context.Context, customerID uuid.UUID, key string) (*Record, error) {
	return r.Get(ctx,
		repository.SelectBy("customer_id", "=", customerID.String()),
		repository.SelectBy("key", "=", key),
	)
}
