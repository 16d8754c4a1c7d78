package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the customers row. Only the columns the progression gates
// need are mapped; a set termination date marks the customer read only.
type Record struct {
	bun.BaseModel `bun:"table:customers"`

	ID                uuid.UUID  `bun:"id,pk,type:uuid"`
	GivenName         string     `bun:"given_name"`
	FamilyName        string     `bun:"family_name"`
	DateOfTermination *time.Time `bun:"date_of_termination,nullzero"`
	CreatedAt         time.Time  `bun:"created_at"`
	UpdatedAt         time.Time  `bun:"updated_at"`
}
