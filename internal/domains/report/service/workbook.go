package service

import (
	"bytes"
	"fmt"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	priceModel "hotel/internal/domains/price/model"
	"hotel/shared/constant"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetBookings = "Bookings"
	sheetDefault  = "Sheet1"
	timestampCell = "2006-01-02 15:04"
)

var bookingHeaders = []string{
	"Booking ID", "Room", "Customer", "Phone", "Email", "Check-in", "Check-out",
	"Nights", "Status", "Total price", "Checked in at", "Checked out at", "Created at",
}

// BuildBookingWorkbook lays bookings out one per row under a styled header, followed by a total line.
func BuildBookingWorkbook(bookings []bookingModel.Booking, generatedAt time.Time) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(sheetDefault, SheetBookings); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err = file.SetSheetRow(SheetBookings, "A1", &bookingHeaders); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	lastHeader, _ := excelize.CoordinatesToCellName(len(bookingHeaders), 1)
	if err = file.SetCellStyle(SheetBookings, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	total := decimal.Zero

	for i, booking := range bookings {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)

		row := []any{
			booking.ID,
			booking.RoomNumber,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
			booking.CheckInDate.Format(constant.DateOnlyFormat),
			booking.CheckOutDate.Format(constant.DateOnlyFormat),
			priceModel.Nights(booking.CheckInDate, booking.CheckOutDate),
			booking.Status,
			booking.TotalPrice.InexactFloat64(),
			formatStamp(booking.ActualCheckInAt),
			formatStamp(booking.ActualCheckOutAt),
			formatStamp(&booking.CreatedAt),
		}

		if err = file.SetSheetRow(SheetBookings, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write booking %s: %w", booking.ID, err)
		}

		total = total.Add(booking.TotalPrice)
	}

	footer, _ := excelize.CoordinatesToCellName(1, len(bookings)+3)
	footerRow := []any{
		fmt.Sprintf("Generated %s", generatedAt.Format(timestampCell)),
		len(bookings), "", "", "", "", "", "", "Total", total.InexactFloat64(),
	}

	if err = file.SetSheetRow(SheetBookings, footer, &footerRow); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}

	_ = file.SetColWidth(SheetBookings, "A", "A", 38)
	_ = file.SetColWidth(SheetBookings, "C", "E", 24)
	_ = file.SetColWidth(SheetBookings, "K", "M", 18)

	var buf bytes.Buffer
	if err = file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func formatStamp(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}

	return t.Format(timestampCell)
}
