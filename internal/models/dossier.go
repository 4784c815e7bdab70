package models

import "time"

// Dossier is the full exemption request snapshot fetched from the dossier store.
// The store is authoritative; the gateway never mutates a snapshot in place.
type Dossier struct {
	ID           string     `json:"id"`
	StudentID    string     `json:"studentId"`
	SectionID    string     `json:"sectionId"`
	SectionName  string     `json:"sectionName,omitempty"`
	AcademicYear string     `json:"academicYear"`
	Status       Status     `json:"status"`
	Motivation   string     `json:"motivation,omitempty"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	Courses   []ExternalCourse     `json:"courses"`
	Documents []SupportingDocument `json:"documents"`
	Items     []ExemptionItem      `json:"items"`
}

// DossierSummary is the dashboard listing row.
type DossierSummary struct {
	ID          string    `json:"id"`
	SectionID   string    `json:"sectionId"`
	SectionName string    `json:"sectionName,omitempty"`
	Status      Status    `json:"status"`
	ItemCount   int       `json:"itemCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ExternalCourse is a course the student passed at another institution.
// HasProof is computed by the dossier store, never locally.
type ExternalCourse struct {
	ID           string  `json:"id"`
	Institution  string  `json:"institution"`
	Code         string  `json:"code"`
	Title        string  `json:"title"`
	ECTS         float64 `json:"ects"`
	Grade        string  `json:"grade,omitempty"`
	YearObtained int     `json:"yearObtained,omitempty"`
	HasProof     bool    `json:"hasDocAttached"`
}

// Label is how a course is referred to in user-facing validation feedback.
func (c ExternalCourse) Label() string {
	if c.Code != "" {
		return c.Code + " " + c.Title
	}
	return c.Title
}

// SupportingDocument is an uploaded proof. CourseID empty means the document
// applies to the whole dossier (global), otherwise it proves one course.
type SupportingDocument struct {
	ID          string       `json:"id"`
	Kind        DocumentKind `json:"kind"`
	Name        string       `json:"name"`
	URL         string       `json:"url"`
	ContentType string       `json:"contentType,omitempty"`
	SizeBytes   int64        `json:"sizeBytes,omitempty"`
	CourseID    string       `json:"courseId,omitempty"`
	UploadedAt  time.Time    `json:"uploadedAt"`
}

// Global reports whether the document covers the dossier as a whole.
func (d SupportingDocument) Global() bool {
	return d.CourseID == ""
}

// ExemptionItem requests one exemption from a target catalog unit, justified
// by one or more external courses. Decision and TotalEctsMatches come
// exclusively from the dossier store and are rendered verbatim.
type ExemptionItem struct {
	ID               string     `json:"id"`
	CourseIDs        []string   `json:"courseIds"`
	UnitCode         string     `json:"unitCode"`
	UnitTitle        string     `json:"unitTitle,omitempty"`
	UnitECTS         float64    `json:"unitEcts,omitempty"`
	Decision         Decision   `json:"decision"`
	TotalEctsMatches bool       `json:"totalEctsMatches"`
	ReviewComment    string     `json:"reviewComment,omitempty"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
}
