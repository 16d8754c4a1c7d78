package customer

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed customer lookup store.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
}

type customerStore interface {
	repository.Repository[*Record]
}

// Repository implements types.CustomerRepository using Bun.
type Repository struct {
	customerStore
}

// NewRepository constructs the default customer repository. WithCache wraps
// the store in the repository cache decorator unless the supplied repository
// is already cached.
func NewRepository(cfg RepositoryConfig, options ...RepositoryOption) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("customer: db or repository required")
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

	opts := applyRepositoryOptions(options)
	if opts.CacheEnabled {
		if _, ok := repo.(*repositorycache.CachedRepository[*Record]); !ok {
			cacheCfg := cache.DefaultConfig()
			if opts.CacheConfig != nil {
				cacheCfg = *opts.CacheConfig
			}
			cacheService, err := cache.NewCacheService(cacheCfg)
			if err != nil {
				return nil, err
			}
			repo = repositorycache.New(repo, cacheService, cache.NewDefaultKeySerializer())
		}
	}

	return &Repository{customerStore: repo}, nil
}

var (
	_ repository.Repository[*Record] = (*Repository)(nil)
	_ types.CustomerRepository       = (*Repository)(nil)
)

// CustomerExists reports whether the customer row is present.
func (r *Repository) CustomerExists(ctx context.Context, customerID uuid.UUID) (bool, error) {
	rec, err := r.lookup(ctx, customerID)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}

// CustomerIsReadOnly reports whether the customer is terminated. Missing
// customers are not read only; the existence gate reports them separately.
func (r *Repository) CustomerIsReadOnly(ctx context.Context, customerID uuid.UUID) (bool, error) {
	rec, err := r.lookup(ctx, customerID)
	if err != nil {
		return false, err
	}
	return rec != nil && rec.DateOfTermination != nil, nil
}

func (r *Repository) lookup(ctx context.Context, customerID uuid.UUID) (*Record, error) {
	if customerID == uuid.Nil {
		return nil, types.ErrCustomerIDRequired
	}
	rec, err := r.Get(ctx, selectID(customerID))
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func selectID(id uuid.UUID) repository.SelectCriteria {
	return repository.SelectBy("id", "=", id.String())
}
