package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// XLSXContentType is the MIME type of exported workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	OrganizationsSheet = "Organizations"
	ProjectsSheet      = "Projects"

	exportTimeLayout = "2006-01-02 15:04:05"
)

// ExportOrganizations writes every organization to w as an XLSX workbook.
// Filters are not applied.
func (s *Service) ExportOrganizations(ctx context.Context, w io.Writer) error {
	orgs, err := s.store.AllOrganizations(ctx)
	if err != nil {
		return fmt.Errorf("load organizations: %w", err)
	}

	rows := make([][]any, len(orgs))
	for i, o := range orgs {
		rows[i] = []any{o.ID, o.Name, o.Country, formatExportTime(o.CreatedAt)}
	}
	return writeWorkbook(w, OrganizationsSheet, []any{"ID", "Name", "Country", "Created"}, rows)
}

// ExportProjects writes every project to w as an XLSX workbook, with the
// owning organization's name as it is at export time.
func (s *Service) ExportProjects(ctx context.Context, w io.Writer) error {
	projects, err := s.store.AllProjects(ctx)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}

	rows := make([][]any, len(projects))
	for i, p := range projects {
		rows[i] = []any{p.ID, p.Name, p.Sector, p.OrganizationName, formatExportTime(p.CreatedAt)}
	}
	return writeWorkbook(w, ProjectsSheet, []any{"ID", "Name", "Sector", "Organization", "Created"}, rows)
}

func writeWorkbook(w io.Writer, sheet string, header []any, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open sheet writer: %w", err)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(exportTimeLayout)
}
