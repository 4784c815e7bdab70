package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edubel/exemption-gateway/internal/models"
)

func reviewDossier() *models.Dossier {
	return &models.Dossier{
		ID:     "d-1",
		Status: models.StatusDraft,
		Courses: []models.ExternalCourse{
			{ID: "c-1", Code: "MATH1", Title: "Analyse"},
			{ID: "c-2", Code: "PROG1", Title: "Programmation"},
		},
	}
}

func TestCheckAdvanceRequiresItems(t *testing.T) {
	d := reviewDossier()
	check := CheckAdvance(d)
	assert.False(t, check.OK)
	assert.True(t, check.NoItems)
}

func TestCheckAdvanceFlagsOrphans(t *testing.T) {
	d := reviewDossier()
	d.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101"}}

	check := CheckAdvance(d)
	assert.False(t, check.OK)
	assert.False(t, check.NoItems)
	assert.Equal(t, []string{"PROG1 Programmation"}, check.OrphanLabels)
}

func TestCheckAdvanceOKWhenEveryCourseCited(t *testing.T) {
	d := reviewDossier()
	d.Items = []models.ExemptionItem{
		{ID: "i-1", CourseIDs: []string{"c-1", "c-2"}, UnitCode: "UE101"},
	}

	check := CheckAdvance(d)
	assert.True(t, check.OK)
	assert.Empty(t, check.OrphanLabels)
}

func TestCheckAdvanceCourseInSeveralItems(t *testing.T) {
	d := reviewDossier()
	d.Items = []models.ExemptionItem{
		{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101"},
		{ID: "i-2", CourseIDs: []string{"c-1"}, UnitCode: "UE102"},
		{ID: "i-3", CourseIDs: []string{"c-2"}, UnitCode: "UE103"},
	}
	assert.True(t, CheckAdvance(d).OK)
}

func TestAnalysisNeverReadyWithoutCourses(t *testing.T) {
	d := &models.Dossier{
		ID:     "d-1",
		Status: models.StatusDraft,
		Documents: []models.SupportingDocument{
			{ID: "doc-1", Kind: models.DocumentBulletin, Name: "bulletin.pdf"},
		},
	}
	check := CheckAnalysisReady(d)
	assert.False(t, check.Ready)
	assert.True(t, check.NoCourses)
}

func TestAnalysisReadyWithGlobalDocumentOnly(t *testing.T) {
	d := reviewDossier()
	d.Documents = []models.SupportingDocument{
		{ID: "doc-1", Kind: models.DocumentBulletin, Name: "bulletin.pdf"},
	}

	check := CheckAnalysisReady(d)
	assert.True(t, check.Ready)
	assert.True(t, check.HasGlobalDoc)
	assert.NotEmpty(t, check.CoursesNoProof)
}

func TestAnalysisReadyWhenEveryCourseProven(t *testing.T) {
	d := reviewDossier()
	for i := range d.Courses {
		d.Courses[i].HasProof = true
	}

	check := CheckAnalysisReady(d)
	assert.True(t, check.Ready)
	assert.False(t, check.HasGlobalDoc)
}

func TestAnalysisNotReadyWithPartialProofsAndNoGlobal(t *testing.T) {
	d := reviewDossier()
	d.Courses[0].HasProof = true

	check := CheckAnalysisReady(d)
	assert.False(t, check.Ready)
	assert.Equal(t, []string{"PROG1 Programmation"}, check.CoursesNoProof)
	assert.NotEmpty(t, check.Reason())
}

func TestAnalysisGuardSerialisesPerDossier(t *testing.T) {
	guard := NewAnalysisGuard()

	assert.True(t, guard.Acquire("d-1"))
	assert.False(t, guard.Acquire("d-1"))
	assert.True(t, guard.Acquire("d-2"))
	assert.True(t, guard.Busy("d-1"))

	guard.Release("d-1")
	assert.False(t, guard.Busy("d-1"))
	assert.True(t, guard.Acquire("d-1"))
}
