// Package report renders booking data into downloadable documents.
// Renderers write straight to an io.Writer so handlers can stream the
// result without a temp file.
package report

import (
	"fmt"
	"io"

	"omservice/internal/models"
	"omservice/internal/stats"

	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingBaseHeaders = []string{
	"Booking ID", "Service Type", "Service Name", "Customer Name", "Age",
	"Phone", "Email", "Address", "Event Date", "Status", "Booking Date",
	"Total Amount", "Notes",
}

var bookingBaseWidths = []float64{12, 15, 20, 20, 8, 15, 25, 30, 12, 12, 12, 12, 30}

// serviceExtraHeaders lists the per-service columns appended after the
// base set, in the order the service type first appears in the data.
var serviceExtraHeaders = map[string][]string{
	models.ServiceCatering:    {"Meal Type", "Guests", "Event Duration"},
	models.ServiceTravels:     {"Pickup Location", "Drop Destination", "Travel Duration", "Passengers"},
	models.ServicePhotography: {"Event Type", "Photography Duration"},
	models.ServiceSweetStall:  {"Sweet Quantity", "Function Time"},
}

// WriteBookings renders one row per booking on a "Bookings" sheet.
// Empty optionals are written as "N/A"; service-specific columns stay
// blank on rows of other services.
func WriteBookings(w io.Writer, bookings []models.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := append([]string{}, bookingBaseHeaders...)
	extraCol := make(map[string]int)
	for _, b := range bookings {
		for _, h := range serviceExtraHeaders[b.ServiceType] {
			if _, ok := extraCol[h]; !ok {
				extraCol[h] = len(headers) + 1
				headers = append(headers, h)
			}
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, h)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for i, b := range bookings {
		row := i + 2
		base := []any{
			b.ShortID(), b.ServiceType, b.ServiceName, b.Name, orNA64(b.Age),
			b.Phone, orNA(b.Email), orNA(b.Address), b.Date, b.Status,
			b.CreatedAt.Format("1/2/2006"), orNA(b.TotalAmount), orNA(b.Notes),
		}
		for j, v := range base {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			_ = f.SetCellValue(bookingsSheet, cell, v)
		}
		for h, v := range serviceExtraValues(b) {
			cell, _ := excelize.CoordinatesToCellName(extraCol[h], row)
			_ = f.SetCellValue(bookingsSheet, cell, v)
		}
	}

	for i := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		width := 15.0
		if i < len(bookingBaseWidths) {
			width = bookingBaseWidths[i]
		}
		_ = f.SetColWidth(bookingsSheet, col, col, width)
	}

	_ = f.DeleteSheet("Sheet1")
	return f.Write(w)
}

// WriteStatistics renders an aggregation summary as a three-sheet
// workbook: By Service, By Status, Monthly Trends.
func WriteStatistics(w io.Writer, summary stats.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	serviceRows := make([][]any, 0, len(summary.ByService))
	for _, s := range summary.ByService {
		serviceRows = append(serviceRows, []any{s.ServiceType, s.Count, s.TotalAmount})
	}
	if err := writeStatSheet(f, "By Service", []string{"Service Type", "Total Bookings", "Total Amount"}, serviceRows); err != nil {
		return err
	}

	statusRows := make([][]any, 0, len(summary.ByStatus))
	for _, s := range summary.ByStatus {
		statusRows = append(statusRows, []any{s.Status, s.Count})
	}
	if err := writeStatSheet(f, "By Status", []string{"Status", "Count"}, statusRows); err != nil {
		return err
	}

	monthlyRows := make([][]any, 0, len(summary.Monthly))
	for _, m := range summary.Monthly {
		monthlyRows = append(monthlyRows, []any{m.Year, int(m.Month), m.Count, m.TotalAmount})
	}
	if err := writeStatSheet(f, "Monthly Trends", []string{"Year", "Month", "Bookings", "Total Amount"}, monthlyRows); err != nil {
		return err
	}

	index, _ := f.GetSheetIndex("By Service")
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")
	return f.Write(w)
}

func writeStatSheet(f *excelize.File, name string, headers []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(name, cell, h)
		_ = f.SetCellStyle(name, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(name, col, col, 18)
	}

	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(name, cell, v)
		}
	}
	return nil
}

func serviceExtraValues(b models.Booking) map[string]any {
	values := make(map[string]any)
	switch {
	case b.Details.Catering != nil:
		d := b.Details.Catering
		values["Meal Type"] = orNA(d.MealType)
		values["Guests"] = orNA64(d.Guests)
		values["Event Duration"] = orNA(d.EventDuration)
	case b.Details.Travel != nil:
		d := b.Details.Travel
		values["Pickup Location"] = orNA(d.PickupLocation)
		values["Drop Destination"] = orNA(d.DropDestination)
		values["Travel Duration"] = orNA(d.TravelDuration)
		values["Passengers"] = orNA64(d.PassengerCount)
	case b.Details.Photography != nil:
		d := b.Details.Photography
		values["Event Type"] = orNA(d.EventType)
		values["Photography Duration"] = orNA(d.Duration)
	case b.Details.SweetStall != nil:
		d := b.Details.SweetStall
		values["Sweet Quantity"] = orNA(d.Quantity)
		values["Function Time"] = orNA(d.FunctionTime)
	}
	return values
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orNA64(n int64) any {
	if n == 0 {
		return "N/A"
	}
	return n
}
