package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AleXx313/shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// BookingExporter renders an owner's booking listing as an XLSX
// workbook. When dir is set, every export also leaves a copy on disk.
type BookingExporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewBookingExporter(dir string, logger *zerolog.Logger) *BookingExporter {
	return &BookingExporter{dir: dir, logger: logger}
}

// Write streams the workbook to w. Bookings arrive already ordered
// (start date descending) and are written as-is.
func (e *BookingExporter) Write(w io.Writer, fileName string, ownerID int64, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Bookings for owner %d, exported %s",
		ownerID, time.Now().UTC().Format("02.01.2006 15:04")))
	_ = f.MergeCell(sheetName, "A1", "F1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	e.writeHeaders(f)
	e.writeRows(f, bookings)

	_ = f.SetColWidth(sheetName, "A", "A", 10)
	_ = f.SetColWidth(sheetName, "B", "C", 25)
	_ = f.SetColWidth(sheetName, "D", "F", 20)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	e.archive(f, fileName)

	e.logger.Info().Int64("owner_id", ownerID).Int("bookings", len(bookings)).Msg("bookings exported")
	return nil
}

// archive keeps a best-effort copy in the exports directory.
func (e *BookingExporter) archive(f *excelize.File, fileName string) {
	if e.dir == "" {
		return
	}
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		e.logger.Warn().Err(err).Str("dir", e.dir).Msg("create export directory failed")
		return
	}
	path := filepath.Join(e.dir, fileName)
	if err := f.SaveAs(path); err != nil {
		e.logger.Warn().Err(err).Str("file_path", path).Msg("archive export failed")
		return
	}
	e.logger.Info().Str("file_path", path).Msg("export archived")
}

func (e *BookingExporter) writeHeaders(f *excelize.File) {
	headers := []string{"ID", "Item", "Booker", "Start", "End", "Status"}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}
}

func (e *BookingExporter) writeRows(f *excelize.File, bookings []models.Booking) {
	for i, booking := range bookings {
		row := i + 3
		values := []any{
			booking.ID,
			booking.ItemName,
			booking.BookerName,
			booking.Start.UTC().Format("02.01.2006 15:04"),
			booking.End.UTC().Format("02.01.2006 15:04"),
			booking.Status,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheetName, cell, value)
		}
	}
}
