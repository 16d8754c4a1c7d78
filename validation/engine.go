// Package validation implements the business rule set shared by create and
// patch flows. The engine is pure: it never touches storage and never panics
// on partial input, and it collects every violation instead of stopping at
// the first.
package validation

import (
	"strconv"

	"github.com/google/uuid"
	"github.com/learnpath/go-progressions/pkg/types"
)

const ukprnLength = 8

// EngineConfig wires dependencies for the validation engine.
type EngineConfig struct {
	Clock types.Clock
}

// Engine evaluates progression business rules against the shared field
// contract so resources and merged patch shapes validate identically.
type Engine struct {
	clock types.Clock
}

// NewEngine constructs the rule evaluator.
func NewEngine(cfg EngineConfig) *Engine {
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	return &Engine{clock: clock}
}

// Validate runs every rule and returns the full violation list. An empty
// result means the fields satisfy all rules.
func (e *Engine) Validate(fields types.ProgressionFields) []types.Violation {
	if fields == nil {
		return []types.Violation{{Field: "LearningProgression", Message: "learning progression is required"}}
	}
	now := e.clock.Now()
	var violations []types.Violation

	if fields.GetCustomerID() == uuid.Nil {
		violations = append(violations, types.Violation{
			Field:   "CustomerId",
			Message: "customer id is required",
		})
	}

	recorded := fields.GetDateProgressionRecorded()
	switch {
	case recorded == nil:
		violations = append(violations, types.Violation{
			Field:   "DateProgressionRecorded",
			Message: "date progression recorded is required",
		})
	case recorded.After(now):
		violations = append(violations, types.Violation{
			Field:   "DateProgressionRecorded",
			Message: "date progression recorded must not be in the future",
		})
	}

	status := fields.GetCurrentLearningStatus()
	switch {
	case status == nil:
		violations = append(violations, types.Violation{
			Field:   "CurrentLearningStatus",
			Message: "current learning status is required",
		})
	case !status.Valid():
		violations = append(violations, types.Violation{
			Field:   "CurrentLearningStatus",
			Message: "current learning status is not a known value",
		})
	}

	if hours := fields.GetLearningHours(); hours != nil && !hours.Valid() {
		violations = append(violations, types.Violation{
			Field:   "LearningHours",
			Message: "learning hours is not a known value",
		})
	}

	level := fields.GetCurrentQualificationLevel()
	switch {
	case level == nil:
		violations = append(violations, types.Violation{
			Field:   "CurrentQualificationLevel",
			Message: "current qualification level is required",
		})
	case !level.Valid():
		violations = append(violations, types.Violation{
			Field:   "CurrentQualificationLevel",
			Message: "current qualification level is not a known value",
		})
	}

	if status != nil && *status == types.LearningStatusInLearning {
		started := fields.GetDateLearningStarted()
		switch {
		case started == nil:
			violations = append(violations, types.Violation{
				Field:   "DateLearningStarted",
				Message: "date learning started is required when the customer is in learning",
			})
		case started.After(now):
			violations = append(violations, types.Violation{
				Field:   "DateLearningStarted",
				Message: "date learning started must not be in the future",
			})
		}
	}

	if level != nil && *level < types.QualificationLevelNoQual {
		// TODO: confirm with product whether this rule should read
		// DateQualificationLevelAchieved; the shipped behavior checks the
		// learning start date while reporting against the achieved date.
		achievedProxy := fields.GetDateLearningStarted()
		switch {
		case achievedProxy == nil:
			violations = append(violations, types.Violation{
				Field:   "DateQualificationLevelAchieved",
				Message: "date qualification level achieved is required when a qualification level is held",
			})
		case achievedProxy.After(now):
			violations = append(violations, types.Violation{
				Field:   "DateQualificationLevelAchieved",
				Message: "date qualification level achieved must not be in the future",
			})
		}
	}

	if ukprn := fields.GetLastLearningProvidersUKPRN(); ukprn != nil {
		violations = append(violations, validateUKPRN(*ukprn)...)
	}

	return violations
}

func validateUKPRN(value string) []types.Violation {
	if len(value) != ukprnLength {
		return []types.Violation{{
			Field:   "LastLearningProvidersUKPRN",
			Message: "ukprn must be exactly 8 characters",
		}}
	}
	if _, err := strconv.ParseUint(value, 10, 64); err != nil {
		return []types.Violation{{
			Field:   "LastLearningProvidersUKPRN",
			Message: "ukprn must be numeric",
		}}
	}
	// TODO: the inherited numeric range rule (value < 10000000 && value >
	// 99999999) is unsatisfiable and therefore not enforced; pending a
	// product decision on the intended bounds it stays a no-op.
	return nil
}
