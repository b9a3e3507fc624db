package export

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"levelminds/internal/domain/assessment"
	"levelminds/internal/domain/user"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SheetSpec struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Workbook renders the sheets to xlsx bytes with a bold, filterable header row.
func Workbook(sheets []SheetSpec) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, s := range sheets {
		name := s.Title
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("new sheet: %w", err)
		}

		if err := writeRow(f, name, 1, s.Header); err != nil {
			return nil, err
		}
		for r, row := range s.Rows {
			if err := writeRow(f, name, r+2, row); err != nil {
				return nil, err
			}
		}

		if len(s.Header) == 0 {
			continue
		}
		end, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
		_ = f.SetCellStyle(name, "A1", end, bold)
		_ = f.AutoFilter(name, "A1:"+end, nil)
		setWidths(f, name, s)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for c, v := range values {
		cell, err := excelize.CoordinatesToCellName(c+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

// setWidths sizes columns from the header and the first rows, clamped to 12..40.
func setWidths(f *excelize.File, sheet string, s SheetSpec) {
	for c := range s.Header {
		width := len(s.Header[c])
		for r := 0; r < min(50, len(s.Rows)); r++ {
			if c < len(s.Rows[r]) && len(s.Rows[r][c]) > width {
				width = len(s.Rows[r][c])
			}
		}
		w := float64(width) * 0.9
		w = max(12, min(40, w))
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(sheet, col, col, w)
	}
}

func UsersSheet(users []user.User) SheetSpec {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID.String(),
			u.Email,
			string(u.Role),
			u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return SheetSpec{
		Title:  "Users",
		Header: []string{"ID", "Email", "Role", "Created At"},
		Rows:   rows,
	}
}

func AssessmentsSheet(items []assessment.ExportRow) SheetSpec {
	rows := make([][]string, 0, len(items))
	for _, a := range items {
		rows = append(rows, []string{
			a.StudentName,
			a.StudentEmail,
			a.Category,
			a.SkillName,
			strconv.Itoa(a.TotalScore) + "/" + strconv.Itoa(assessment.MaxTotalScore),
			a.AssessedAt.UTC().Format("2006-01-02"),
		})
	}
	return SheetSpec{
		Title:  "Assessments",
		Header: []string{"Student", "Email", "Category", "Skill", "Score", "Assessed On"},
		Rows:   rows,
	}
}

// Filename returns e.g. "users_2025-01-31.xlsx".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("2006-01-02"))
}
