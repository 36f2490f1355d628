// Package export writes report data as .xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yigit/lrms/internal/app/models"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Attachment file names.
const (
	ReportsFilename         = "reports.xlsx"
	StudentFeedbackFilename = "student_feedback.xlsx"
)

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Write renders the sheets into a workbook and writes it to w.
func Write(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return fmt.Errorf("export: rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return fmt.Errorf("export: add sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, bold); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle int) error {
	header := make([]interface{}, len(sheet.Headers))
	for i, h := range sheet.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("export: header row: %w", err)
	}
	if len(sheet.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(sheet.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("export: header style: %w", err)
		}
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}
	return nil
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ReportsSheet lays out reports one per row.
func ReportsSheet(reports []models.Report) Sheet {
	sheet := Sheet{
		Name: "Reports",
		Headers: []string{
			"ID", "Faculty", "Class", "Week", "Lecture Date", "Course", "Course Code",
			"Lecturer", "Students Present", "Total Students", "Venue", "Scheduled Time",
			"Topic Taught", "Learning Outcomes", "Recommendations", "PRL Feedback",
		},
		Rows: make([][]interface{}, 0, len(reports)),
	}
	for _, r := range reports {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.ID, r.FacultyName, r.ClassName, r.Week, r.LectureDate.String(), r.CourseName, r.CourseCode,
			r.LecturerName, r.StudentsPresent, r.TotalStudents, r.Venue, r.ScheduledTime,
			r.TopicTaught, r.LearningOutcome, r.Recommendations, optional(r.PRLFeedback),
		})
	}
	return sheet
}

// FeedbackSheet lays out a student's ratings one per row.
func FeedbackSheet(ratings []models.Rating) Sheet {
	sheet := Sheet{
		Name:    "Feedback",
		Headers: []string{"ID", "Report ID", "Type", "Rating", "Comments", "Submitted"},
		Rows:    make([][]interface{}, 0, len(ratings)),
	}
	for _, r := range ratings {
		sheet.Rows = append(sheet.Rows, []interface{}{
			r.ID, r.ReportID, string(r.Type), r.Rating, r.Comments, r.CreatedAt.Format(models.DateLayout),
		})
	}
	return sheet
}
