package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edubel/exemption-gateway/internal/models"
)

func draftDossier() *models.Dossier {
	return &models.Dossier{ID: "d-1", Status: models.StatusDraft}
}

func TestDeriveStageDefaultsToCollect(t *testing.T) {
	assert.Equal(t, StageCollect, DeriveStage(draftDossier()))
}

func TestDeriveStageItemsMeanReview(t *testing.T) {
	d := draftDossier()
	d.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}, UnitCode: "UE101"}}
	assert.Equal(t, StageReview, DeriveStage(d))
}

func TestDeriveStageStatusWinsOverItems(t *testing.T) {
	for _, status := range []models.Status{
		models.StatusSubmitted,
		models.StatusInReview,
		models.StatusPartiallyAccepted,
		models.StatusAccepted,
		models.StatusRejected,
	} {
		d := draftDossier()
		d.Status = status
		d.Items = []models.ExemptionItem{{ID: "i-1", CourseIDs: []string{"c-1"}}}
		assert.Equal(t, StageTracking, DeriveStage(d), "status %s", status)
	}
}

func TestDeriveStageIsPure(t *testing.T) {
	d := draftDossier()
	d.Courses = []models.ExternalCourse{{ID: "c-1", Code: "MATH1", Title: "Analyse"}}
	first := DeriveStage(d)
	second := DeriveStage(d)
	assert.Equal(t, first, second)
	assert.Equal(t, models.StatusDraft, d.Status)
	assert.Len(t, d.Courses, 1)
}

func TestParseStatusNormalisesLegacySpellings(t *testing.T) {
	got, err := models.ParseStatus("approved")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, got)

	got, err = models.ParseStatus("UNDER_REVIEW")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, got)
}

func TestParseStatusRejectsUnknown(t *testing.T) {
	_, err := models.ParseStatus("ARCHIVED")
	require.Error(t, err)
}
