package command

import (
	"context"
	"time"

	"github.com/learnpath/go-progressions/pkg/types"
)

// Validator evaluates business rules over the shared field contract.
type Validator interface {
	Validate(fields types.ProgressionFields) []types.Violation
}

// Merger overlays a sparse patch onto a stored JSON document.
type Merger interface {
	Merge(current []byte, patch *types.ProgressionPatch) ([]byte, error)
}

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeIDGen(idGen types.IDGenerator) types.IDGenerator {
	if idGen != nil {
		return idGen
	}
	return types.UUIDGenerator{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

func emitProgressionHook(ctx context.Context, hooks types.Hooks, event types.ProgressionEvent) {
	if hooks.AfterProgressionChange == nil {
		return
	}
	hooks.AfterProgressionChange(ctx, event)
}

func emitAuditHook(ctx context.Context, hooks types.Hooks, record types.AuditRecord) {
	if hooks.AfterAudit == nil {
		return
	}
	hooks.AfterAudit(ctx, record)
}

func recordAudit(ctx context.Context, sink types.AuditSink, record types.AuditRecord) {
	if sink == nil {
		return
	}
	_ = sink.Record(ctx, record)
}

// rekeyDocument renames the internal `id` key to the public identifier name
// on response bodies.
func rekeyDocument(document map[string]any) map[string]any {
	if document == nil {
		return nil
	}
	out := make(map[string]any, len(document))
	for k, v := range document {
		out[k] = v
	}
	if id, ok := out["id"]; ok {
		delete(out, "id")
		out["LearningProgressionId"] = id
	}
	return out
}
