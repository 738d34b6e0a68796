package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"classroom-backend/models"
)

// ExcelConfirmationService writes booking confirmations as xlsx files into
// a documents directory.
type ExcelConfirmationService struct {
	dir string
}

func NewExcelConfirmationService(dir string) *ExcelConfirmationService {
	return &ExcelConfirmationService{dir: dir}
}

// GenerateConfirmation renders the confirmation sheet for an approved
// booking and returns the file path.
func (s *ExcelConfirmationService) GenerateConfirmation(booking *models.Booking) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create documents dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Confirmation"
	f.SetSheetName("Sheet1", sheet)
	_ = f.SetColWidth(sheet, "A", "A", 22)
	_ = f.SetColWidth(sheet, "B", "B", 40)

	period, err := booking.Period()
	if err != nil {
		return "", err
	}

	rows := [][2]interface{}{
		{"Booking Confirmation", ""},
		{"Reference", booking.ReferenceCode},
		{"Room", booking.Room.DisplayName()},
		{"Date", models.FormatDate(booking.BookingDate)},
		{"Period", period.Label},
		{"Time", period.TimeRange()},
		{"Purpose", booking.Purpose},
		{"Status", booking.Status.DisplayName()},
		{"Issued", time.Now().Format("2006-01-02 15:04")},
	}
	for i, row := range rows {
		cellA, _ := excelize.CoordinatesToCellName(1, i+1)
		cellB, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(sheet, cellA, row[0])
		_ = f.SetCellValue(sheet, cellB, row[1])
	}

	path := filepath.Join(s.dir, fmt.Sprintf("booking-%s.xlsx", booking.ReferenceCode))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save confirmation: %w", err)
	}
	return path, nil
}
