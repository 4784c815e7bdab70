package models

import (
	"fmt"
	"strings"
)

// Status is the dossier lifecycle status as reported by the dossier store.
type Status string

const (
	StatusDraft             Status = "DRAFT"
	StatusSubmitted         Status = "SUBMITTED"
	StatusInReview          Status = "IN_REVIEW"
	StatusPartiallyAccepted Status = "PARTIALLY_ACCEPTED"
	StatusAccepted          Status = "ACCEPTED"
	StatusRejected          Status = "REJECTED"
)

// StatusClass groups statuses by what the wizard may still do with the dossier.
type StatusClass string

const (
	ClassPreSubmission StatusClass = "PRE_SUBMISSION"
	ClassInReview      StatusClass = "IN_REVIEW"
	ClassAccepted      StatusClass = "TERMINAL_ACCEPTED"
	ClassRejected      StatusClass = "TERMINAL_REJECTED"
)

// legacy spellings observed in earlier backend revisions, normalised at the boundary.
var statusAliases = map[string]Status{
	"APPROVED":     StatusAccepted,
	"UNDER_REVIEW": StatusInReview,
	"PENDING":      StatusSubmitted,
}

// ParseStatus normalises a raw status string from the dossier store.
// Unknown spellings are an error, never a silent fall-through.
func ParseStatus(raw string) (Status, error) {
	upper := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch upper {
	case StatusDraft, StatusSubmitted, StatusInReview, StatusPartiallyAccepted, StatusAccepted, StatusRejected:
		return upper, nil
	}
	if alias, ok := statusAliases[string(upper)]; ok {
		return alias, nil
	}
	return "", fmt.Errorf("unknown dossier status %q", raw)
}

// Class maps every known status onto its lifecycle class.
func (s Status) Class() StatusClass {
	switch s {
	case StatusDraft:
		return ClassPreSubmission
	case StatusSubmitted, StatusInReview:
		return ClassInReview
	case StatusAccepted, StatusPartiallyAccepted:
		return ClassAccepted
	case StatusRejected:
		return ClassRejected
	}
	return ClassInReview
}

// Editable reports whether the dossier may still be mutated by the student.
func (s Status) Editable() bool {
	return s.Class() == ClassPreSubmission
}

// Decision is the per-item review outcome, computed exclusively by the backend.
type Decision string

const (
	DecisionPending      Decision = "PENDING"
	DecisionAutoAccepted Decision = "AUTO_ACCEPTED"
	DecisionNeedsReview  Decision = "NEEDS_REVIEW"
	DecisionAccepted     Decision = "ACCEPTED"
	DecisionRejected     Decision = "REJECTED"
)

// DocumentKind categorises supporting documents.
type DocumentKind string

const (
	DocumentBulletin   DocumentKind = "BULLETIN"
	DocumentProgramme  DocumentKind = "PROGRAMME"
	DocumentMotivation DocumentKind = "MOTIVATION"
	DocumentOther      DocumentKind = "OTHER"
)
