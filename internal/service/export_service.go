package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/edubel/exemption-gateway/pkg/export"

	"github.com/edubel/exemption-gateway/internal/models"
)

// ExportService renders dossier recaps for download.
type ExportService interface {
	RecapPDF(ctx context.Context, studentID, dossierID string) ([]byte, string, error)
	DashboardCSV(ctx context.Context, studentID string) ([]byte, string, error)
}

type exportService struct {
	dossiers DossierService
	pdf      *export.PDFExporter
	csv      *export.CSVExporter
}

// NewExportService builds the export service on top of the orchestrator so
// ownership checks and status normalisation apply to exports too.
func NewExportService(dossiers DossierService) ExportService {
	return &exportService{
		dossiers: dossiers,
		pdf:      export.NewPDFExporter(),
		csv:      export.NewCSVExporter(),
	}
}

func (s *exportService) RecapPDF(ctx context.Context, studentID, dossierID string) ([]byte, string, error) {
	view, err := s.dossiers.Get(ctx, studentID, dossierID)
	if err != nil {
		return nil, "", err
	}
	d := view.Dossier

	courseRows := make([]map[string]string, 0, len(d.Courses))
	for _, course := range d.Courses {
		courseRows = append(courseRows, map[string]string{
			"Institution": course.Institution,
			"Code":        course.Code,
			"Title":       course.Title,
			"ECTS":        fmt.Sprintf("%.1f", course.ECTS),
			"Grade":       course.Grade,
		})
	}

	itemRows := make([]map[string]string, 0, len(d.Items))
	courseByID := make(map[string]models.ExternalCourse, len(d.Courses))
	for _, course := range d.Courses {
		courseByID[course.ID] = course
	}
	for _, item := range d.Items {
		labels := make([]string, 0, len(item.CourseIDs))
		for _, id := range item.CourseIDs {
			labels = append(labels, courseByID[id].Label())
		}
		itemRows = append(itemRows, map[string]string{
			"Unit":     item.UnitCode,
			"Courses":  strings.Join(labels, ", "),
			"Decision": string(item.Decision),
			"Comment":  item.ReviewComment,
		})
	}

	docRows := make([]map[string]string, 0, len(d.Documents))
	for _, doc := range d.Documents {
		scope := "dossier"
		if !doc.Global() {
			scope = courseByID[doc.CourseID].Label()
		}
		docRows = append(docRows, map[string]string{
			"Document": doc.Name,
			"Kind":     string(doc.Kind),
			"Scope":    scope,
		})
	}

	sections := []export.Section{
		{Title: fmt.Sprintf("Status: %s (stage %s)", d.Status, view.StageKey), Data: export.Dataset{
			Headers: []string{"Institution", "Code", "Title", "ECTS", "Grade"},
			Rows:    courseRows,
		}},
		{Title: "Requested exemptions", Data: export.Dataset{
			Headers: []string{"Unit", "Courses", "Decision", "Comment"},
			Rows:    itemRows,
		}},
		{Title: "Supporting documents", Data: export.Dataset{
			Headers: []string{"Document", "Kind", "Scope"},
			Rows:    docRows,
		}},
	}

	payload, err := s.pdf.RenderSections(sections, fmt.Sprintf("Exemption dossier %s", d.ID))
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("dossier-%s-%s.pdf", d.ID, time.Now().Format("20060102"))
	return payload, filename, nil
}

func (s *exportService) DashboardCSV(ctx context.Context, studentID string) ([]byte, string, error) {
	summaries, err := s.dossiers.List(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	rows := make([]map[string]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, map[string]string{
			"Dossier": summary.ID,
			"Section": summary.SectionName,
			"Status":  string(summary.Status),
			"Items":   fmt.Sprintf("%d", summary.ItemCount),
			"Updated": summary.UpdatedAt.Format(time.RFC3339),
		})
	}

	payload, err := s.csv.Render(export.Dataset{
		Headers: []string{"Dossier", "Section", "Status", "Items", "Updated"},
		Rows:    rows,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("dossiers-%s.csv", time.Now().Format("20060102"))
	return payload, filename, nil
}
