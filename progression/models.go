package progression

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the learning_progressions row. The document column is the
// source of truth and may carry legacy fields the typed shape does not know;
// the remaining columns are denormalized lookup keys.
type Record struct {
	bun.BaseModel `bun:"table:learning_progressions"`

	ID         uuid.UUID       `bun:"id,pk,type:uuid"`
	CustomerID uuid.UUID       `bun:"customer_id,type:uuid,notnull"`
	Document   json.RawMessage `bun:"document,type:jsonb"`
	CreatedAt  time.Time       `bun:"created_at"`
	UpdatedAt  time.Time       `bun:"updated_at"`
	UpdatedBy  string          `bun:"updated_by"`
}
