package ingest

import (
	"strings"
	"testing"

	apperrors "github.com/matzehuels/orgview/pkg/errors"
)

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		wantErr bool
	}{
		{
			name:   "all required",
			header: []string{"employee_id", "employee_name", "reports_to_id", "department_name"},
		},
		{
			name:   "extra optional columns",
			header: []string{"employee_id", "employee_name", "reports_to_id", "department_name", "fte", "location"},
		},
		{
			name:   "case and whitespace tolerant",
			header: []string{" Employee_ID ", "EMPLOYEE_NAME", "Reports_To_Id", "department_name"},
		},
		{
			name:    "missing reports_to_id",
			header:  []string{"employee_id", "employee_name", "department_name"},
			wantErr: true,
		},
		{
			name:    "empty header",
			header:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.header)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColumns() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.Is(err, apperrors.ErrCodeMissingColumn) {
				t.Errorf("code = %v, want MISSING_COLUMN", apperrors.GetCode(err))
			}
		})
	}
}

func TestReadCSV(t *testing.T) {
	input := `employee_id,employee_name,reports_to_id,department_name,fte
1,Ada,,Exec,
2,Grace,1,Engineering,0.8
3,Linus,1,Engineering,`

	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[1][ColEmployeeName] != "Grace" {
		t.Errorf("row 1 name = %q, want Grace", rows[1][ColEmployeeName])
	}
	if rows[1][ColReportsToID] != "1" {
		t.Errorf("row 1 manager = %q, want 1", rows[1][ColReportsToID])
	}
}

func TestReadCSVShortLines(t *testing.T) {
	input := "employee_id,employee_name,reports_to_id,department_name\n1,Ada\n"
	rows, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if rows[0][ColDepartmentName] != "" {
		t.Errorf("missing trailing field = %q, want empty", rows[0][ColDepartmentName])
	}
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	if !apperrors.Is(err, apperrors.ErrCodeEmptyDataset) {
		t.Errorf("code = %v, want EMPTY_DATASET", apperrors.GetCode(err))
	}
}

func TestRecords(t *testing.T) {
	rows := []Row{
		{
			ColEmployeeID:     " 1 ",
			ColEmployeeName:   "Ada",
			ColReportsToID:    "",
			ColDepartmentName: "Exec",
			ColFTE:            "",
		},
		{
			ColEmployeeID:     "2",
			ColEmployeeName:   "Grace",
			ColReportsToID:    "1",
			ColDepartmentName: "Engineering",
			ColFTE:            "0.8",
		},
	}

	records, err := Records(rows)
	if err != nil {
		t.Fatalf("Records error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].ID != "1" {
		t.Errorf("ID not trimmed: %q", records[0].ID)
	}
	if records[0].FTE != 1.0 {
		t.Errorf("blank FTE = %v, want default 1.0", records[0].FTE)
	}
	if records[1].FTE != 0.8 {
		t.Errorf("FTE = %v, want 0.8", records[1].FTE)
	}
}

func TestRecordsMissingColumn(t *testing.T) {
	rows := []Row{{ColEmployeeID: "1", ColEmployeeName: "Ada"}}
	_, err := Records(rows)
	if !apperrors.Is(err, apperrors.ErrCodeMissingColumn) {
		t.Errorf("code = %v, want MISSING_COLUMN", apperrors.GetCode(err))
	}
}

func TestParseFTE(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 1.0},
		{"0.5", 0.5},
		{" 2 ", 2.0},
		{"garbage", 1.0},
		{"-1", 1.0},
	}
	for _, tt := range tests {
		if got := parseFTE(tt.in); got != tt.want {
			t.Errorf("parseFTE(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
