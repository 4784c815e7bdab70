package wizard

import (
	"github.com/edubel/exemption-gateway/internal/models"
)

// AdvanceCheck is the outcome of validating the review → summary transition.
type AdvanceCheck struct {
	OK           bool     `json:"ok"`
	NoItems      bool     `json:"noItems"`
	OrphanLabels []string `json:"orphanLabels,omitempty"`
}

// CheckAdvance validates that the student may leave the review stage.
// A dossier advances only when it holds at least one exemption item and no
// course is left uncited by any item. Orphan labels are reported so each
// offending course can be pointed at individually.
func CheckAdvance(d *models.Dossier) AdvanceCheck {
	check := AdvanceCheck{NoItems: len(d.Items) == 0}

	cited := make(map[string]bool, len(d.Items))
	for _, item := range d.Items {
		for _, id := range item.CourseIDs {
			cited[id] = true
		}
	}
	for _, course := range d.Courses {
		if !cited[course.ID] {
			check.OrphanLabels = append(check.OrphanLabels, course.Label())
		}
	}

	check.OK = !check.NoItems && len(check.OrphanLabels) == 0
	return check
}

// AnalysisCheck is the outcome of the analysis-readiness gate.
type AnalysisCheck struct {
	Ready          bool     `json:"ready"`
	NoCourses      bool     `json:"noCourses"`
	CoursesNoProof []string `json:"coursesWithoutProof,omitempty"`
	HasGlobalDoc   bool     `json:"hasGlobalDocument"`
}

// CheckAnalysisReady validates that the matching analysis may be requested.
// Readiness requires at least one course, plus either a global supporting
// document or a proof attached to every single course. The two document
// conditions are alternatives, not both. Per-course proof presence comes
// from the store-computed HasProof flag on each course.
func CheckAnalysisReady(d *models.Dossier) AnalysisCheck {
	check := AnalysisCheck{NoCourses: len(d.Courses) == 0}

	for _, doc := range d.Documents {
		if doc.Global() {
			check.HasGlobalDoc = true
			break
		}
	}
	for _, course := range d.Courses {
		if !course.HasProof {
			check.CoursesNoProof = append(check.CoursesNoProof, course.Label())
		}
	}

	check.Ready = !check.NoCourses && (check.HasGlobalDoc || len(check.CoursesNoProof) == 0)
	return check
}

// Reason summarises why the gate refused, for the precondition error message.
func (c AnalysisCheck) Reason() string {
	if c.Ready {
		return ""
	}
	if c.NoCourses {
		return "add at least one external course before requesting the analysis"
	}
	return "attach a global document or a proof for every course before requesting the analysis"
}
