package wizard

import (
	"github.com/edubel/exemption-gateway/internal/models"
)

// Stage is the wizard step the browser should render for a dossier.
// Stage 1 (creation form) only exists before a dossier does, so it is never
// derived from a snapshot.
type Stage int

const (
	StageCollect  Stage = 2
	StageReview   Stage = 3
	StageSummary  Stage = 4
	StageTracking Stage = 5
)

// String returns the stage label used in responses and logs.
func (s Stage) String() string {
	switch s {
	case StageCollect:
		return "COLLECT"
	case StageReview:
		return "REVIEW"
	case StageSummary:
		return "SUMMARY"
	case StageTracking:
		return "TRACKING"
	}
	return "UNKNOWN"
}

// DeriveStage computes the wizard stage from a dossier snapshot alone.
// Precedence: a post-submission status wins over everything, then the
// presence of exemption items, then the default collect stage. Stage 4 is
// reached only through an explicit advance, never derived.
func DeriveStage(d *models.Dossier) Stage {
	if d.Status.Class() != models.ClassPreSubmission {
		return StageTracking
	}
	if len(d.Items) > 0 {
		return StageReview
	}
	return StageCollect
}
