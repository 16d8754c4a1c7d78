// Package merge applies sparse progression patches onto stored JSON
// documents. The merge runs over the generic document tree rather than a
// typed struct so unknown or legacy fields in old documents survive a patch
// untouched.
package merge

import (
	"encoding/json"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/learnpath/go-progressions/pkg/types"
)

// Engine merges patch payloads into stored documents via RFC 7396 merge
// patch semantics. It holds no state and performs no I/O.
type Engine struct{}

// NewEngine constructs the merge engine.
func NewEngine() Engine {
	return Engine{}
}

// Merge overlays the patch's present fields onto the current document and
// returns the merged JSON. Fields absent on the patch are left untouched.
// An unparseable current document yields types.ErrMalformedDocument.
func (e Engine) Merge(current []byte, patch *types.ProgressionPatch) ([]byte, error) {
	if !json.Valid(current) {
		return nil, types.ErrMalformedDocument
	}
	overlay, err := json.Marshal(Overlay(patch))
	if err != nil {
		return nil, err
	}
	merged, err := jsonpatch.MergePatch(current, overlay)
	if err != nil {
		return nil, types.ErrMalformedDocument
	}
	return merged, nil
}

// Overlay builds the sparse merge document from the patch's non-nil fields.
// Values are only ever set, never null, so RFC 7396 key deletion cannot
// trigger; the created-by key in particular is created when the stored
// document lacks it and overwritten otherwise.
func Overlay(patch *types.ProgressionPatch) map[string]any {
	overlay := make(map[string]any)
	if patch == nil {
		return overlay
	}
	if patch.ID != nil {
		overlay["id"] = *patch.ID
	}
	if patch.CustomerID != nil {
		overlay["CustomerId"] = *patch.CustomerID
	}
	if patch.DateProgressionRecorded != nil {
		overlay["DateProgressionRecorded"] = *patch.DateProgressionRecorded
	}
	if patch.CurrentLearningStatus != nil {
		overlay["CurrentLearningStatus"] = *patch.CurrentLearningStatus
	}
	if patch.LearningHours != nil {
		overlay["LearningHours"] = *patch.LearningHours
	}
	if patch.DateLearningStarted != nil {
		overlay["DateLearningStarted"] = *patch.DateLearningStarted
	}
	if patch.CurrentQualificationLevel != nil {
		overlay["CurrentQualificationLevel"] = *patch.CurrentQualificationLevel
	}
	if patch.DateQualificationLevelAchieved != nil {
		overlay["DateQualificationLevelAchieved"] = *patch.DateQualificationLevelAchieved
	}
	if patch.LastLearningProvidersUKPRN != nil {
		overlay["LastLearningProvidersUKPRN"] = *patch.LastLearningProvidersUKPRN
	}
	if patch.LastModifiedDate != nil {
		overlay["LastModifiedDate"] = *patch.LastModifiedDate
	}
	if patch.LastModifiedTouchpointID != nil {
		overlay["LastModifiedTouchpointId"] = *patch.LastModifiedTouchpointID
	}
	if patch.CreatedBy != nil {
		overlay["CreatedBy"] = *patch.CreatedBy
	}
	return overlay
}
