// Package ingest converts generic string-keyed rows into validated employee
// records.
//
// The hierarchy core never operates on untyped rows: this package is the
// single boundary where the loose row shape produced by file parsing is
// checked for required columns and narrowed into [org.Record] values. A thin
// CSV reader is included so the CLI can go from file to forest, but callers
// with their own ingestion (spreadsheets, APIs) can hand rows to [Records]
// directly.
package ingest

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
	"github.com/matzehuels/orgview/pkg/org"
)

// Column names the core requires or recognizes on each row.
const (
	ColEmployeeID     = "employee_id"
	ColEmployeeName   = "employee_name"
	ColReportsToID    = "reports_to_id"
	ColDepartmentName = "department_name"
	ColJobTitle       = "job_title"
	ColLocation       = "location"
	ColEmploymentType = "employment_type"
	ColFTE            = "fte"
	ColDottedManager  = "dotted_line_manager_id"
)

// RequiredColumns must all be present for construction to proceed.
// reports_to_id is required as a column even though individual values may be
// blank (blank means root).
var RequiredColumns = []string{
	ColEmployeeID,
	ColEmployeeName,
	ColReportsToID,
	ColDepartmentName,
}

// Row is one generic ingested row: string-keyed fields as extracted from a
// CSV or spreadsheet by the (external) file parsing layer.
type Row map[string]string

// ValidateColumns checks that every required column is present in the given
// header. Column names are matched after trimming and lowercasing. Returns a
// fatal MISSING_COLUMN error naming the first absent column.
func ValidateColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[normalizeColumn(h)] = true
	}
	for _, col := range RequiredColumns {
		if !present[col] {
			return apperrors.New(apperrors.ErrCodeMissingColumn, "missing required column: %s", col)
		}
	}
	return nil
}

// Records converts rows into employee records, validating the column set
// against the first row. Row order is preserved: the builder's first-wins
// duplicate policy depends on it.
func Records(rows []Row) ([]org.Record, error) {
	if len(rows) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyDataset, "no rows to ingest")
	}

	header := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		header = append(header, k)
	}
	if err := ValidateColumns(header); err != nil {
		return nil, err
	}

	records := make([]org.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, recordFromRow(row))
	}
	return records, nil
}

// ReadCSV parses header-mapped CSV from r into generic rows. The first line
// is the header; its column names are normalized (trimmed, lowercased).
// Short lines are tolerated; missing trailing fields read as empty.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are the parser's problem, not ours
	cr.TrimLeadingSpace = true

	raw, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "malformed CSV")
	}
	if len(raw) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeEmptyDataset, "CSV contains no rows")
	}

	header := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		header[i] = normalizeColumn(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for _, line := range raw[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(line) {
				row[col] = line[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadRecords is the convenience path from CSV bytes straight to records.
func ReadRecords(r io.Reader) ([]org.Record, error) {
	rows, err := ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return Records(rows)
}

func recordFromRow(row Row) org.Record {
	rec := org.Record{
		ID:              row[ColEmployeeID],
		Name:            strings.TrimSpace(row[ColEmployeeName]),
		ManagerID:       row[ColReportsToID],
		Department:      strings.TrimSpace(row[ColDepartmentName]),
		Title:           strings.TrimSpace(row[ColJobTitle]),
		Location:        strings.TrimSpace(row[ColLocation]),
		EmploymentType:  strings.TrimSpace(row[ColEmploymentType]),
		DottedManagerID: row[ColDottedManager],
		FTE:             parseFTE(row[ColFTE]),
	}
	return rec.Normalize()
}

// parseFTE parses a full-time-equivalent value, falling back to the default
// for blank or unparseable input. Negative values are treated as unparseable.
func parseFTE(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return org.DefaultFTE
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return org.DefaultFTE
	}
	return v
}

func normalizeColumn(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
