package settings

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the customer_settings row.
type Record struct {
	bun.BaseModel `bun:"table:customer_settings"`

	ID         uuid.UUID      `bun:"id,pk,type:uuid"`
	CustomerID uuid.UUID      `bun:"customer_id,type:uuid,notnull"`
	Key        string         `bun:"key,notnull"`
	Value      map[string]any `bun:"value,type:jsonb"`
	Version    int            `bun:"version"`
	CreatedAt  time.Time      `bun:"created_at"`
	UpdatedAt  time.Time      `bun:"updated_at"`
	UpdatedBy  string         `bun:"updated_by"`
}

// Setting is the domain view of one stored settings entry.
type Setting struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	Key        string
	Value      map[string]any
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UpdatedBy  string
}

func fromDomain(setting Setting) *Record {
	return &Record{
		ID:         setting.ID,
		CustomerID: setting.CustomerID,
		Key:        setting.Key,
		Value:      cloneMap(setting.Value),
		Version:    setting.Version,
		CreatedAt:  setting.CreatedAt,
		UpdatedAt:  setting.UpdatedAt,
		UpdatedBy:  setting.UpdatedBy,
	}
}

func toDomain(rec *Record) Setting {
	if rec == nil {
		return Setting{}
	}
	return Setting{
		ID:         rec.ID,
		CustomerID: rec.CustomerID,
		Key:        rec.Key,
		Value:      cloneMap(rec.Value),
		Version:    rec.Version,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		UpdatedBy:  rec.UpdatedBy,
	}
}

func cloneMap(origin map[string]any) map[string]any {
	if len(origin) == 0 {
		return nil
	}
	out := make(map[string]any, len(origin))
	for k, v := range origin {
		out[k] = v
	}
	return out
}
