package models

// CreateDossierRequest opens a new exemption dossier for the session student.
type CreateDossierRequest struct {
	SectionID    string `json:"sectionId" binding:"required"`
	AcademicYear string `json:"academicYear" binding:"required,academic_year"`
	Motivation   string `json:"motivation"`
}

// CourseInput adds one external course to a dossier.
type CourseInput struct {
	Institution  string  `json:"institution" binding:"required"`
	Code         string  `json:"code" binding:"required"`
	Title        string  `json:"title" binding:"required"`
	ECTS         float64 `json:"ects" binding:"required,gt=0"`
	Grade        string  `json:"grade"`
	YearObtained int     `json:"yearObtained"`
}

// DocumentInput registers an uploaded document on a dossier. CourseID empty
// registers it as a global document.
type DocumentInput struct {
	Kind     DocumentKind `json:"kind" binding:"required,oneof=BULLETIN PROGRAMME MOTIVATION OTHER"`
	Name     string       `json:"name" binding:"required"`
	URL      string       `json:"url" binding:"required"`
	CourseID string       `json:"courseId"`
}

// ItemInput requests an exemption from a catalog unit, citing the external
// courses that justify it.
type ItemInput struct {
	CourseIDs []string `json:"courseIds" binding:"required,min=1,dive,required"`
	UnitCode  string   `json:"unitCode" binding:"required"`
}

// SubmitRequest carries the explicit acknowledgment for final submission.
type SubmitRequest struct {
	Confirm bool `json:"confirm"`
}
