package services

import (
	"bytes"

	"github.com/xuri/excelize/v2"

	"classroom-backend/models"
)

// ExportService renders dispatcher booking lists as downloadable xlsx.
type ExportService struct {
	bookings *BookingService
}

func NewExportService(bookings *BookingService) *ExportService {
	return &ExportService{bookings: bookings}
}

var exportHeaders = []string{
	"ID", "Reference", "Room", "Date", "Period", "Time",
	"Teacher ID", "Purpose", "Status", "Processed By", "Rejection Reason",
}

// ExportBookings writes the filtered bookings to an in-memory workbook.
func (s *ExportService) ExportBookings(f BookingFilter) (*bytes.Buffer, error) {
	bookings, err := s.bookings.FilterBookings(f)
	if err != nil {
		return nil, err
	}

	wb := excelize.NewFile()
	defer wb.Close()

	sheet := "Bookings"
	wb.SetSheetName("Sheet1", sheet)
	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = wb.SetCellValue(sheet, cell, header)
	}

	for i, b := range bookings {
		timeRange := b.StartTime + " – " + b.EndTime
		values := []interface{}{
			b.ID, b.ReferenceCode, b.Room.Number,
			models.FormatDate(b.BookingDate), b.PeriodNumber, timeRange,
			b.TeacherID, b.Purpose, string(b.Status), b.ProcessedBy, b.RejectionReason,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			_ = wb.SetCellValue(sheet, cell, v)
		}
	}

	return wb.WriteToBuffer()
}
