package audit

import (
	"time"

	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/uptrace/bun"
)

// LogEntry models the audit_log row.
type LogEntry struct {
	bun.BaseModel `bun:"table:audit_log"`

	ID            uuid.UUID      `bun:"id,pk,type:uuid"`
	CustomerID    uuid.UUID      `bun:"customer_id,type:uuid"`
	TouchpointID  string         `bun:"touchpoint_id"`
	Verb          string         `bun:"verb,notnull"`
	ObjectType    string         `bun:"object_type"`
	ObjectID      string         `bun:"object_id"`
	CorrelationID string         `bun:"correlation_id"`
	Data          map[string]any `bun:"data,type:jsonb"`
	OccurredAt    time.Time      `bun:"occurred_at"`
	CreatedAt     time.Time      `bun:"created_at"`
}

func toLogEntry(record types.AuditRecord) *LogEntry {
	return &LogEntry{
		ID:            record.ID,
		CustomerID:    record.CustomerID,
		TouchpointID:  record.TouchpointID,
		Verb:          record.Verb,
		ObjectType:    record.ObjectType,
		ObjectID:      record.ObjectID,
		CorrelationID: record.CorrelationID,
		Data:          record.Data,
		OccurredAt:    record.OccurredAt,
	}
}

func toAuditRecord(entry *LogEntry) types.AuditRecord {
	if entry == nil {
		return types.AuditRecord{}
	}
	return types.AuditRecord{
		ID:            entry.ID,
		CustomerID:    entry.CustomerID,
		TouchpointID:  entry.TouchpointID,
		Verb:          entry.Verb,
		ObjectType:    entry.ObjectType,
		ObjectID:      entry.ObjectID,
		CorrelationID: entry.CorrelationID,
		Data:          entry.Data,
		OccurredAt:    entry.OccurredAt,
	}
}
