package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"hostelhub/internal/adapters/persistence/repositories"
	"hostelhub/internal/config"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// ReportService renders fee, complaint, leave and occupancy reports to
// PDF and Excel files on disk.
type ReportService struct {
	feeRepo       *repositories.FeeRepository
	complaintRepo *repositories.ComplaintRepository
	leaveRepo     *repositories.LeaveRepository
	roomRepo      *repositories.RoomRepository
	cfg           *config.Config
}

// NewReportService creates a new report service
func NewReportService(
	feeRepo *repositories.FeeRepository,
	complaintRepo *repositories.ComplaintRepository,
	leaveRepo *repositories.LeaveRepository,
	roomRepo *repositories.RoomRepository,
	cfg *config.Config,
) *ReportService {
	return &ReportService{
		feeRepo:       feeRepo,
		complaintRepo: complaintRepo,
		leaveRepo:     leaveRepo,
		roomRepo:      roomRepo,
		cfg:           cfg,
	}
}

// ReportFile points at one generated report
type ReportFile struct {
	FileName string `json:"filename"`
	URL      string `json:"url"`
}

// ReportRangeInput bounds a report by creation date. Either side may
// be empty.
type ReportRangeInput struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Format    string `json:"format" validate:"omitempty,oneof=pdf excel"`
}

func (s *ReportService) outPath(name string) (string, *ReportFile, error) {
	if err := os.MkdirAll(s.cfg.Reports.Dir, 0o755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(s.cfg.Reports.Dir, name)
	file := &ReportFile{
		FileName: name,
		URL:      s.cfg.Reports.BaseURL + "/" + name,
	}
	return path, file, nil
}

// FeeReport renders the fee ledger for the range
func (s *ReportService) FeeReport(ctx context.Context, input *ReportRangeInput) (*ReportFile, error) {
	fees, err := s.feeRepo.ListBetween(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	headers := []string{"Student", "Type", "Month", "Final", "Paid", "Balance", "Status", "Due Date"}
	rows := make([][]string, 0, len(fees))
	var totalBilled, totalPaid float64
	for _, f := range fees {
		student := fmt.Sprintf("#%d", f.StudentID)
		if f.Student != nil {
			student = f.Student.FullName()
		}
		rows = append(rows, []string{
			student,
			f.FeeType,
			fmt.Sprintf("%02d/%d", f.Month, f.Year),
			fmt.Sprintf("%.2f", f.FinalAmount),
			fmt.Sprintf("%.2f", f.PaidAmount),
			fmt.Sprintf("%.2f", f.BalanceAmount),
			f.Status,
			f.DueDate.Format("2006-01-02"),
		})
		totalBilled += f.FinalAmount
		totalPaid += f.PaidAmount
	}
	footer := fmt.Sprintf("Total billed: %.2f    Total collected: %.2f", totalBilled, totalPaid)

	return s.render("fees", "Fee Report", headers, rows, footer, input.Format)
}

// ComplaintReport renders complaints created in the range
func (s *ReportService) ComplaintReport(ctx context.Context, input *ReportRangeInput) (*ReportFile, error) {
	complaints, err := s.complaintRepo.ListBetween(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Title", "Category", "Priority", "Status", "Reporter", "Created"}
	rows := make([][]string, 0, len(complaints))
	for _, cp := range complaints {
		reporter := fmt.Sprintf("#%d", cp.ReportedBy)
		if cp.Reporter != nil {
			reporter = cp.Reporter.FullName()
		}
		rows = append(rows, []string{
			cp.ComplaintID,
			cp.Title,
			cp.Category,
			cp.Priority,
			cp.Status,
			reporter,
			cp.CreatedAt.Format("2006-01-02"),
		})
	}
	footer := fmt.Sprintf("Total complaints: %d", len(complaints))

	return s.render("complaints", "Complaint Report", headers, rows, footer, input.Format)
}

// LeaveReport renders leaves starting in the range
func (s *ReportService) LeaveReport(ctx context.Context, input *ReportRangeInput) (*ReportFile, error) {
	leaves, err := s.leaveRepo.ListBetween(ctx, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Student", "Type", "From", "To", "Days", "Status"}
	rows := make([][]string, 0, len(leaves))
	for _, l := range leaves {
		student := fmt.Sprintf("#%d", l.StudentID)
		if l.Student != nil {
			student = l.Student.FullName()
		}
		rows = append(rows, []string{
			l.LeaveID,
			student,
			l.LeaveType,
			l.StartDate.Format("2006-01-02"),
			l.EndDate.Format("2006-01-02"),
			fmt.Sprintf("%d", l.DurationDays()),
			l.Status,
		})
	}
	footer := fmt.Sprintf("Total leaves: %d", len(leaves))

	return s.render("leaves", "Leave Report", headers, rows, footer, input.Format)
}

// OccupancyReport renders the room inventory snapshot
func (s *ReportService) OccupancyReport(ctx context.Context, format string) (*ReportFile, error) {
	rooms, _, err := s.roomRepo.List(ctx, repositories.RoomFilter{Limit: 10000})
	if err != nil {
		return nil, err
	}

	headers := []string{"Room", "Block", "Floor", "Type", "Capacity", "Occupied", "Status", "Rent"}
	rows := make([][]string, 0, len(rooms))
	var capacity, occupied int
	for _, r := range rooms {
		rows = append(rows, []string{
			r.RoomNumber,
			r.Block,
			fmt.Sprintf("%d", r.Floor),
			r.Type,
			fmt.Sprintf("%d", r.Capacity),
			fmt.Sprintf("%d", r.CurrentOccupancy),
			r.Status,
			fmt.Sprintf("%.2f", r.MonthlyRent),
		})
		capacity += r.Capacity
		occupied += r.CurrentOccupancy
	}
	footer := fmt.Sprintf("Beds occupied: %d / %d", occupied, capacity)

	return s.render("occupancy", "Occupancy Report", headers, rows, footer, format)
}

// render dispatches on the requested format, defaulting to PDF
func (s *ReportService) render(slug, title string, headers []string, rows [][]string, footer, format string) (*ReportFile, error) {
	stamp := time.Now().Format("20060102_150405")

	if format == "excel" {
		return s.renderExcel(fmt.Sprintf("%s_%s.xlsx", slug, stamp), title, headers, rows, footer)
	}
	return s.renderPDF(fmt.Sprintf("%s_%s.pdf", slug, stamp), title, headers, rows, footer)
}

// renderPDF writes one landscape table document
func (s *ReportService) renderPDF(name, title string, headers []string, rows [][]string, footer string) (*ReportFile, error) {
	path, file, err := s.outPath(name)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Generated "+time.Now().Format("02 Jan 2006 15:04"))
	pdf.Ln(10)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(headers))

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		for _, cell := range row {
			pdf.CellFormat(colWidth, 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if footer != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Cell(0, 8, footer)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return nil, err
	}

	log.Printf("✅ Report generated: %s (%d rows)", name, len(rows))
	return file, nil
}

// renderExcel writes one worksheet workbook
func (s *ReportService) renderExcel(name, title string, headers []string, rows [][]string, footer string) (*ReportFile, error) {
	path, file, err := s.outPath(name)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if err := wb.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := wb.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+3)
			if err := wb.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	if footer != "" {
		cell, _ := excelize.CoordinatesToCellName(1, len(rows)+4)
		if err := wb.SetCellValue(sheet, cell, footer); err != nil {
			return nil, err
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return nil, err
	}

	log.Printf("✅ Report generated: %s (%d rows)", name, len(rows))
	return file, nil
}
