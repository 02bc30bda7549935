package finance

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const csvContentType = "text/csv"

// ReportStorage is where archived reports are written
type ReportStorage interface {
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error
	GetURL(key string) string
}

// WriteMonthlyCSV writes a summary block followed by one row per purchase line
func WriteMonthlyCSV(w io.Writer, summary *MonthlySummary) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"period", "total_revenue", "instructor_earned", "special_admin_earned", "regular_admin_earned"},
		{
			summary.Period,
			money(summary.TotalRevenue),
			money(summary.InstructorEarned),
			money(summary.SpecialAdminEarned),
			money(summary.RegularAdminEarned),
		},
		{},
		{
			"instructor_id", "instructor_name", "course_id", "course_title", "session_id",
			"session_title", "session_date", "ticket_number", "student_name", "amount", "earned", "is_test",
		},
	}

	for _, instructor := range summary.Instructors {
		for _, course := range instructor.Courses {
			for _, session := range course.Sessions {
				date := ""
				if d := timeOrZero(session.Date); !d.IsZero() {
					date = d.Format(dateLayout)
				}
				for _, line := range session.Purchases {
					rows = append(rows, []string{
						strconv.FormatInt(instructor.InstructorID, 10),
						instructor.InstructorName,
						course.CourseID,
						course.Title,
						session.SessionID,
						session.Title,
						date,
						line.TicketNumber,
						line.StudentName,
						money(line.Amount),
						money(line.Earned),
						strconv.FormatBool(line.IsTest),
					})
				}
			}
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write monthly csv: %w", err)
	}
	return nil
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ArchiveKey is the storage key for a period's monthly report
func ArchiveKey(period string) string {
	return "finance/monthly/" + archiveFileName(period)
}

func archiveFileName(period string) string {
	return strings.ReplaceAll(strings.ToLower(period), " ", "-") + ".csv"
}

// ReportArchiver stores monthly summaries as CSV files
type ReportArchiver struct {
	storage ReportStorage
}

// NewReportArchiver creates archiver
func NewReportArchiver(storage ReportStorage) *ReportArchiver {
	return &ReportArchiver{storage: storage}
}

// Archive writes the summary and returns where it was stored
func (a *ReportArchiver) Archive(ctx context.Context, summary *MonthlySummary) (*ArchiveResponse, error) {
	var buf bytes.Buffer
	if err := WriteMonthlyCSV(&buf, summary); err != nil {
		return nil, err
	}

	key := ArchiveKey(summary.Period)
	if err := a.storage.Put(ctx, key, &buf, csvContentType); err != nil {
		return nil, fmt.Errorf("archive %s: %w", summary.Period, err)
	}

	return &ArchiveResponse{
		Period: summary.Period,
		Key:    key,
		URL:    a.storage.GetURL(key),
	}, nil
}
