package types

import (
	"time"

	"github.com/google/uuid"
)

// GetCustomerID implements ProgressionFields.
func (p *LearningProgression) GetCustomerID() uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return p.CustomerID
}

// GetDateProgressionRecorded implements ProgressionFields.
func (p *LearningProgression) GetDateProgressionRecorded() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateProgressionRecorded
}

// GetCurrentLearningStatus implements ProgressionFields.
func (p *LearningProgression) GetCurrentLearningStatus() *LearningStatus {
	if p == nil {
		return nil
	}
	return p.CurrentLearningStatus
}

// GetLearningHours implements ProgressionFields.
func (p *LearningProgression) GetLearningHours() *LearningHours {
	if p == nil {
		return nil
	}
	return p.LearningHours
}

// GetDateLearningStarted implements ProgressionFields.
func (p *LearningProgression) GetDateLearningStarted() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateLearningStarted
}

// GetCurrentQualificationLevel implements ProgressionFields.
func (p *LearningProgression) GetCurrentQualificationLevel() *QualificationLevel {
	if p == nil {
		return nil
	}
	return p.CurrentQualificationLevel
}

// GetDateQualificationLevelAchieved implements ProgressionFields.
func (p *LearningProgression) GetDateQualificationLevelAchieved() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateQualificationLevelAchieved
}

// GetLastLearningProvidersUKPRN implements ProgressionFields.
func (p *LearningProgression) GetLastLearningProvidersUKPRN() *string {
	if p == nil {
		return nil
	}
	return p.LastLearningProvidersUKPRN
}

// GetCustomerID implements ProgressionFields.
func (p *ProgressionPatch) GetCustomerID() uuid.UUID {
	if p == nil || p.CustomerID == nil {
		return uuid.Nil
	}
	return *p.CustomerID
}

// GetDateProgressionRecorded implements ProgressionFields.
func (p *ProgressionPatch) GetDateProgressionRecorded() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateProgressionRecorded
}

// GetCurrentLearningStatus implements ProgressionFields.
func (p *ProgressionPatch) GetCurrentLearningStatus() *LearningStatus {
	if p == nil {
		return nil
	}
	return p.CurrentLearningStatus
}

// GetLearningHours implements ProgressionFields.
func (p *ProgressionPatch) GetLearningHours() *LearningHours {
	if p == nil {
		return nil
	}
	return p.LearningHours
}

// GetDateLearningStarted implements ProgressionFields.
func (p *ProgressionPatch) GetDateLearningStarted() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateLearningStarted
}

// GetCurrentQualificationLevel implements ProgressionFields.
func (p *ProgressionPatch) GetCurrentQualificationLevel() *QualificationLevel {
	if p == nil {
		return nil
	}
	return p.CurrentQualificationLevel
}

// GetDateQualificationLevelAchieved implements ProgressionFields.
func (p *ProgressionPatch) GetDateQualificationLevelAchieved() *time.Time {
	if p == nil {
		return nil
	}
	return p.DateQualificationLevelAchieved
}

// GetLastLearningProvidersUKPRN implements ProgressionFields.
func (p *ProgressionPatch) GetLastLearningProvidersUKPRN() *string {
	if p == nil {
		return nil
	}
	return p.LastLearningProvidersUKPRN
}

var (
	_ ProgressionFields = (*LearningProgression)(nil)
	_ ProgressionFields = (*ProgressionPatch)(nil)
)

// ProgressionFromPatch materializes a resource from a fully merged patch
// shape. The record and customer identifiers come from the patch when set.
func ProgressionFromPatch(patch *ProgressionPatch) *LearningProgression {
	if patch == nil {
		return nil
	}
	out := &LearningProgression{
		DateProgressionRecorded:        patch.DateProgressionRecorded,
		CurrentLearningStatus:          patch.CurrentLearningStatus,
		LearningHours:                  patch.LearningHours,
		DateLearningStarted:            patch.DateLearningStarted,
		CurrentQualificationLevel:      patch.CurrentQualificationLevel,
		DateQualificationLevelAchieved: patch.DateQualificationLevelAchieved,
		LastLearningProvidersUKPRN:     patch.LastLearningProvidersUKPRN,
		LastModifiedDate:               patch.LastModifiedDate,
		LastModifiedTouchpointID:       patch.LastModifiedTouchpointID,
		CreatedBy:                      patch.CreatedBy,
	}
	if patch.ID != nil {
		out.ID = *patch.ID
	}
	if patch.CustomerID != nil {
		out.CustomerID = *patch.CustomerID
	}
	return out
}

// PatchFromProgression converts a parsed resource body into the sparse patch
// shape. Zero identifiers map to absent pointers.
func PatchFromProgression(p *LearningProgression) *ProgressionPatch {
	if p == nil {
		return nil
	}
	patch := &ProgressionPatch{
		DateProgressionRecorded:        p.DateProgressionRecorded,
		CurrentLearningStatus:          p.CurrentLearningStatus,
		LearningHours:                  p.LearningHours,
		DateLearningStarted:            p.DateLearningStarted,
		CurrentQualificationLevel:      p.CurrentQualificationLevel,
		DateQualificationLevelAchieved: p.DateQualificationLevelAchieved,
		LastLearningProvidersUKPRN:     p.LastLearningProvidersUKPRN,
		LastModifiedDate:               p.LastModifiedDate,
		LastModifiedTouchpointID:       p.LastModifiedTouchpointID,
		CreatedBy:                      p.CreatedBy,
	}
	if p.ID != uuid.Nil {
		id := p.ID
		patch.ID = &id
	}
	if p.CustomerID != uuid.Nil {
		customerID := p.CustomerID
		patch.CustomerID = &customerID
	}
	return patch
}
