package models

// Section is a study programme the student can target with a dossier.
type Section struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogUnit is a teaching unit from the target programme's catalog.
type CatalogUnit struct {
	Code      string            `json:"code"`
	Title     string            `json:"title"`
	ECTS      float64           `json:"ects"`
	Term      string            `json:"term,omitempty"`
	SectionID string            `json:"sectionId,omitempty"`
	Outcomes  []LearningOutcome `json:"outcomes,omitempty"`
}

// LearningOutcome is a weighted competency attached to a catalog unit.
type LearningOutcome struct {
	Code   string  `json:"code"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}
