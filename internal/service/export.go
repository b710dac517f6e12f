package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/acme-hr-directory/internal/model"
	"github.com/deppfellow/acme-hr-directory/internal/server"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	EmployeesSheet   = "Employees"
	DepartmentsSheet = "Departments"

	// XLSXContentType is the media type of the exported workbook.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	employeeHeaders   = []any{"ID", "Name", "Salary", "Department ID", "Department"}
	departmentHeaders = []any{"ID", "Name"}
)

// EmployeeLister reads the joined employee listing.
type EmployeeLister interface {
	ListEmployees(ctx context.Context) ([]model.EmployeeListing, error)
}

// ExportService renders the directory as an xlsx workbook.
type ExportService struct {
	server      *server.Server
	departments DepartmentLister
	employees   EmployeeLister
}

func NewExportService(s *server.Server, departments DepartmentLister, employees EmployeeLister) *ExportService {
	return &ExportService{
		server:      s,
		departments: departments,
		employees:   employees,
	}
}

// ExportDirectory builds a workbook with an Employees sheet holding the same
// rows as the employee listing and a Departments sheet.
func (s *ExportService) ExportDirectory(ctx context.Context) (*bytes.Buffer, error) {
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	departments, err := s.departments.ListDepartments(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", EmployeesSheet); err != nil {
		return nil, fmt.Errorf("renaming default sheet: %w", err)
	}
	if _, err := f.NewSheet(DepartmentsSheet); err != nil {
		return nil, fmt.Errorf("creating sheet %s: %w", DepartmentsSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	employeeRows := make([][]any, 0, len(employees))
	for _, e := range employees {
		employeeRows = append(employeeRows, []any{e.ID.String(), e.Name, e.Salary, e.DepartmentID, e.DepartmentName})
	}
	if err := writeSheet(f, EmployeesSheet, employeeHeaders, employeeRows, headerStyle, []float64{38, 24, 14, 14, 22}); err != nil {
		return nil, err
	}

	departmentRows := make([][]any, 0, len(departments))
	for _, d := range departments {
		departmentRows = append(departmentRows, []any{d.ID, d.Name})
	}
	if err := writeSheet(f, DepartmentsSheet, departmentHeaders, departmentRows, headerStyle, []float64{8, 24}); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Int("employees", len(employees)).
		Int("departments", len(departments)).
		Msg("directory exported")

	return buf, nil
}

func writeSheet(f *excelize.File, sheet string, headers []any, rows [][]any, headerStyle int, widths []float64) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return fmt.Errorf("resolving %s columns: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(i+2), &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("sizing %s column %s: %w", sheet, col, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing %s header: %w", sheet, err)
	}

	if err := f.AutoFilter(sheet, "A1:"+lastCol+"1", []excelize.AutoFilterOptions{}); err != nil {
		return fmt.Errorf("filtering %s: %w", sheet, err)
	}

	return nil
}
