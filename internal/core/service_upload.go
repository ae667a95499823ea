package core

// service_upload.go implements CSV bulk import.
//
// A file is parsed completely, then every row is applied inside a single
// store transaction which also records one bulk_upload audit entry.
// Rows that lack required values are skipped silently and only counted.
// Master values (country, sector) are upserted before the row's own
// required fields are checked, so a skipped organization row can still
// contribute its country.

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/minicrm/internal/logging"
	"github.com/google/uuid"
)

var (
	organizationColumns = []string{"name", "country"}
	projectColumns      = []string{"name", "sector", "organization"}
)

// rowOutcome reports what applying one row did.
type rowOutcome struct {
	inserted    bool
	masterAdded bool
}

type applyRowFunc func(ctx context.Context, tx Store, h headerIndex, rec []string) (rowOutcome, error)

// ImportOrganizations imports a CSV with name and country columns.
func (s *Service) ImportOrganizations(ctx context.Context, r io.Reader) (ImportResult, error) {
	return s.runImport(ctx, EntityOrganization, r, organizationColumns, applyOrganizationRow)
}

// ImportProjects imports a CSV with name, sector and organization columns.
// The organization column holds the exact name of an existing organization.
func (s *Service) ImportProjects(ctx context.Context, r io.Reader) (ImportResult, error) {
	return s.runImport(ctx, EntityProject, r, projectColumns, applyProjectRow)
}

func (s *Service) runImport(ctx context.Context, kind EntityKind, r io.Reader, required []string, apply applyRowFunc) (ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return ImportResult{}, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	start := time.Now()
	res := ImportResult{ImportID: uuid.NewString(), Kind: kind}
	logger := logging.WithFields(ctx, "import_id", res.ImportID, "kind", kind)

	h, records, err := readImportFile(r, required)
	if err != nil {
		logger.Warn("import rejected", "error", err)
		return ImportResult{}, err
	}

	err = s.store.WithTx(ctx, func(tx Store) error {
		for _, rec := range records {
			if isEmptyRow(rec) {
				continue
			}
			res.TotalRows++

			out, err := apply(ctx, tx, h, rec)
			if err != nil {
				return err
			}
			if out.inserted {
				res.Inserted++
			} else {
				res.Skipped++
			}
			if out.masterAdded {
				res.MastersAdded++
			}
		}

		details := fmt.Sprintf("Bulk upload %s: %d row(s), %d inserted, %d skipped, %d master value(s) added",
			res.ImportID, res.TotalRows, res.Inserted, res.Skipped, res.MastersAdded)
		return s.recordAudit(ctx, tx, kind, 0, ActionBulkUpload, details)
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import %s rows: %w", kind, err)
	}

	res.Duration = time.Since(start)
	logger.Info("import completed",
		"rows", res.TotalRows,
		"inserted", res.Inserted,
		"skipped", res.Skipped,
		"masters_added", res.MastersAdded,
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func applyOrganizationRow(ctx context.Context, tx Store, h headerIndex, rec []string) (rowOutcome, error) {
	name := h.value(rec, "name")
	country := h.value(rec, "country")

	var out rowOutcome
	added, err := upsertMaster(ctx, tx, MasterCountry, country)
	if err != nil {
		return out, err
	}
	out.masterAdded = added

	if name == "" || country == "" {
		return out, nil
	}
	if _, err := tx.CreateOrganization(ctx, OrganizationInput{Name: name, Country: country}); err != nil {
		return out, fmt.Errorf("create organization: %w", err)
	}
	out.inserted = true
	return out, nil
}

func applyProjectRow(ctx context.Context, tx Store, h headerIndex, rec []string) (rowOutcome, error) {
	name := h.value(rec, "name")
	sector := h.value(rec, "sector")
	orgName := h.value(rec, "organization")

	var out rowOutcome
	if orgName == "" {
		return out, nil
	}
	org, err := tx.FindOrganizationByName(ctx, orgName)
	if isNotFound(err) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("resolve organization: %w", err)
	}

	added, err := upsertMaster(ctx, tx, MasterSector, sector)
	if err != nil {
		return out, err
	}
	out.masterAdded = added

	if name == "" || sector == "" {
		return out, nil
	}
	in := ProjectInput{Name: name, Sector: sector, OrganizationID: org.ID}
	if _, err := tx.CreateProject(ctx, in); err != nil {
		return out, fmt.Errorf("create project: %w", err)
	}
	out.inserted = true
	return out, nil
}
