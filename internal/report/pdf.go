package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"omservice/internal/models"
	"omservice/internal/money"
	"omservice/internal/stats"

	"github.com/jung-kurt/gofpdf"
)

// Brand palette shared by both PDF layouts.
var (
	colorGold   = rgb{212, 175, 55}  // #D4AF37
	colorDark   = rgb{25, 2, 28}     // #19021C
	colorCardBg = rgb{249, 245, 255} // #F9F5FF
)

// chartColors cycle round-robin over the donut slices.
var chartColors = []rgb{
	{255, 99, 132},  // #FF6384
	{54, 162, 235},  // #36A2EB
	{255, 206, 86},  // #FFCE56
	{75, 192, 192},  // #4BC0C0
	{153, 102, 255}, // #9966FF
}

var statusColors = map[string]rgb{
	models.StatusPending:   {255, 165, 0},
	"Done":                 {75, 181, 67},
	models.StatusConfirmed: {75, 181, 67},
	models.StatusCompleted: {0, 102, 204},
	models.StatusCancelled: {255, 0, 0},
}

type rgb struct{ r, g, b int }

const (
	ledgerRowHeight = 18
	ledgerBreakY    = 550
)

// WriteAnalytics renders the whole-collection business report: summary
// cards, service-mix donut, monthly bar chart, insights, top customers
// and a paginated booking ledger. A4 landscape, point units.
func WriteAnalytics(w io.Writer, bookings []models.Booking) error {
	summary := stats.Summarize(bookings)

	pdf := gofpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()

	// Dark header bar.
	fill(pdf, colorDark)
	pdf.Rect(0, 0, pageW, 80, "F")
	textColor(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.Text(40, 45, "OM SERVICE PRO")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, 68, "BUSINESS ANALYTICS REPORT")
	pdf.SetTextColor(204, 204, 204)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(620, 45, "Generated: "+time.Now().Format("1/2/2006, 3:04:05 PM"))

	// Snapshot cards.
	topService, _ := summary.TopService()
	drawCard(pdf, 40, "TOTAL REVENUE", "Rs."+money.Format(summary.TotalRevenue), "Gross Income")
	drawCard(pdf, 240, "TOTAL BOOKINGS", strconv.Itoa(summary.TotalBookings),
		fmt.Sprintf("%d Unique Customers", summary.UniqueCustomers))
	drawCard(pdf, 440, "TOP SERVICE", orDash(topService.ServiceType),
		fmt.Sprintf("%d Orders", topService.Count))
	drawCard(pdf, 640, "CONVERSION RATE", fmt.Sprintf("%d%%", summary.ConversionRate), "Completed Orders")

	drawDonut(pdf, summary)
	drawMonthlyBars(pdf, summary)
	drawInsights(pdf, summary, topService)
	drawTopCustomers(pdf, summary)
	drawLedger(pdf, bookings, pageW, pageH)

	return pdf.Output(w)
}

func drawCard(pdf *gofpdf.Fpdf, x float64, label, value, subtext string) {
	// Shadow behind the card body.
	pdf.SetFillColor(224, 224, 224)
	roundedRect(pdf, x+2, 102, 180, 80, 8, "F")
	fill(pdf, colorCardBg)
	stroke(pdf, colorGold)
	pdf.SetLineWidth(1)
	roundedRect(pdf, x, 100, 180, 80, 8, "FD")

	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x+15, 123, label)
	textColor(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.Text(x+15, 157, value)
	if subtext != "" {
		pdf.SetTextColor(102, 102, 102)
		pdf.SetFont("Helvetica", "", 9)
		pdf.Text(x+15, 172, subtext)
	}
}

// drawDonut renders the service mix: slice angle proportional to the
// booking count, colors cycling round-robin, white hole in the middle.
func drawDonut(pdf *gofpdf.Fpdf, summary stats.Summary) {
	const chartY = 230.0
	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(100, chartY+12, "SERVICE MIX")

	if summary.TotalBookings == 0 {
		return
	}

	const donutX, donutY, radius = 150.0, chartY + 90, 60.0
	startAngle := 0.0
	for i, svc := range summary.ByService {
		slice := float64(svc.Count) / float64(summary.TotalBookings) * 2 * math.Pi
		end := startAngle + slice

		fill(pdf, chartColors[i%len(chartColors)])
		pdf.MoveTo(donutX, donutY)
		pdf.LineTo(donutX+radius*math.Cos(startAngle), donutY+radius*math.Sin(startAngle))
		pdf.ArcTo(donutX, donutY, radius, radius, 0, -startAngle*180/math.Pi, -end*180/math.Pi)
		pdf.ClosePath()
		pdf.DrawPath("F")
		startAngle = end

		// Legend swatch + label.
		fill(pdf, chartColors[i%len(chartColors)])
		pdf.Rect(230, chartY+40+float64(i)*20, 10, 10, "F")
		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(250, chartY+49+float64(i)*20, fmt.Sprintf("%s (%d)", svc.ServiceType, svc.Count))
	}

	pdf.SetFillColor(255, 255, 255)
	pdf.Circle(donutX, donutY, 30, "F")
}

// drawMonthlyBars renders the last six months scaled to the tallest bar.
func drawMonthlyBars(pdf *gofpdf.Fpdf, summary stats.Summary) {
	const chartY = 230.0
	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(450, chartY+12, "MONTHLY BOOKING TRENDS")

	months := summary.LastMonths(6)
	const barX, barY, barW, maxBarH = 450.0, chartY + 140, 30.0, 100.0

	maxVal := 1
	for _, m := range months {
		if m.Count > maxVal {
			maxVal = m.Count
		}
	}

	for i, m := range months {
		h := float64(m.Count) / float64(maxVal) * maxBarH
		x := barX + float64(i)*50

		fill(pdf, colorGold)
		pdf.Rect(x, barY-h, barW, h, "F")

		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "", 9)
		pdf.SetXY(x, barY+6)
		pdf.CellFormat(barW, 12, m.Label(), "", 0, "C", false, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(x, barY-h-14)
		pdf.CellFormat(barW, 10, strconv.Itoa(m.Count), "", 0, "C", false, 0, "")
	}

	pdf.SetLineWidth(1)
	pdf.SetDrawColor(204, 204, 204)
	pdf.Line(barX, barY, barX+300, barY)
}

func drawInsights(pdf *gofpdf.Fpdf, summary stats.Summary, topService stats.ServiceStat) {
	const summaryY = 420.0
	pdf.SetFillColor(240, 240, 240)
	roundedRect(pdf, 40, summaryY, 350, 100, 5, "F")

	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(55, summaryY+27, "INSIGHTS")

	pdf.SetTextColor(68, 68, 68)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(55, summaryY+45, fmt.Sprintf("- %s is your leading service with %d bookings.",
		orDash(topService.ServiceType), topService.Count))
	pdf.Text(55, summaryY+60, fmt.Sprintf("- You have retained %d unique customers.", summary.UniqueCustomers))
	pdf.Text(55, summaryY+75, fmt.Sprintf("- Current completion rate is %d%%.", summary.ConversionRate))
}

func drawTopCustomers(pdf *gofpdf.Fpdf, summary stats.Summary) {
	const summaryY = 420.0
	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(450, summaryY+12, "TOP CUSTOMERS")

	cy := summaryY + 20
	for i, c := range summary.TopCustomers(5) {
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(249, 249, 249)
		}
		pdf.Rect(450, cy, 300, 15, "F")

		pdf.SetTextColor(51, 51, 51)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(460, cy+11, fmt.Sprintf("%d. %s", i+1, c.Name))
		textColor(pdf, colorGold)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.Text(700, cy+11, fmt.Sprintf("%d Bookings", c.Count))
		cy += 18
	}
}

// drawLedger writes the detailed booking table, breaking pages at a
// fixed Y threshold and redrawing the header on every page.
func drawLedger(pdf *gofpdf.Fpdf, bookings []models.Booking, pageW, pageH float64) {
	widths := []float64{70, 60, 100, 30, 70, 120, 100, 50, 60, 80}
	headers := []string{"ID", "Date", "Customer", "Age", "Phone", "Email", "Service", "Amt", "Status", "Location"}

	drawHeader := func(y float64) {
		fill(pdf, colorDark)
		pdf.Rect(30, y, 780, 20, "F")
		textColor(pdf, colorGold)
		pdf.SetFont("Helvetica", "B", 9)
		cx := 35.0
		for i, h := range headers {
			pdf.Text(cx, y+14, h)
			cx += widths[i]
		}
	}

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	textColor(pdf, colorDark)
	pdf.Text(30, 44, "DETAILED BOOKING LEDGER")

	currentY := 60.0
	drawHeader(currentY)
	currentY += 20

	pdf.SetFont("Helvetica", "", 8)
	for i, b := range bookings {
		if currentY > ledgerBreakY {
			drawLedgerFooter(pdf, pageW, pageH)
			pdf.AddPage()
			currentY = 30
			drawHeader(currentY)
			currentY += 20
			pdf.SetFont("Helvetica", "", 8)
		}

		if i%2 == 0 {
			pdf.SetFillColor(244, 244, 244)
			pdf.Rect(30, currentY, 780, ledgerRowHeight, "F")
		}

		pdf.SetTextColor(51, 51, 51)
		cx := 35.0
		for j, cell := range ledgerRow(b) {
			pdf.Text(cx, currentY+12, truncate(cell, int(widths[j]/4)))
			cx += widths[j]
		}
		currentY += ledgerRowHeight
	}

	drawLedgerFooter(pdf, pageW, pageH)
}

func drawLedgerFooter(pdf *gofpdf.Fpdf, pageW, pageH float64) {
	footerY := pageH - 25
	fill(pdf, colorDark)
	pdf.Rect(0, footerY, pageW, 25, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "", 8)
	pdf.Text(40, footerY+15, fmt.Sprintf("(c) %d OM SERVICE PRO | Confidential Business Report", time.Now().Year()))
}

func ledgerRow(b models.Booking) []string {
	amt := "-"
	if b.TotalAmount != "" {
		amt = "Rs." + money.Format(money.ParseAmount(b.TotalAmount))
	}
	id := b.ShortID()
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	location := "-"
	if b.Address != "" {
		location = truncate(b.Address, 15) + "..."
	}
	age := "-"
	if b.Age > 0 {
		age = strconv.FormatInt(b.Age, 10)
	}
	return []string{
		id, orDash(b.Date), firstNonEmpty(b.Name, "Guest"), age, orDash(b.Phone),
		orDash(b.Email), b.ServiceType, amt, firstNonEmpty(b.Status, models.StatusPending), location,
	}
}

// WriteBookingConfirmation renders a single-booking confirmation
// document: portrait A4 with customer, service, payment and notes
// sections.
func WriteBookingConfirmation(w io.Writer, b *models.Booking) error {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(50, 50, 50)
	pdf.AddPage()

	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 34, "OM SERVICE PRO", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	textColor(pdf, colorGold)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 20, "BOOKING CONFIRMATION", "", 1, "C", false, 0, "")
	pdf.Ln(14)

	stroke(pdf, colorGold)
	pdf.SetLineWidth(2)
	y := pdf.GetY()
	pdf.Line(50, y, 545, y)
	pdf.Ln(16)

	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Helvetica", "", 12)
	y = pdf.GetY()
	pdf.Text(50, y+10, "Booking ID: #"+b.ShortID())
	pdf.Text(400, y+10, "Date: "+time.Now().Format("1/2/2006"))
	pdf.Ln(24)

	sc, ok := statusColors[b.Status]
	if !ok {
		sc = rgb{102, 102, 102}
	}
	textColor(pdf, sc)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 18, "Status: "+firstNonEmpty(b.Status, models.StatusPending), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	writeSection(pdf, "Customer Information", [][2]string{
		{"Name:", b.Name},
		{"Age:", orNAInt(b.Age)},
		{"Phone:", b.Phone},
		{"Email:", orNA(b.Email)},
		{"Address:", orNA(b.Address)},
	})

	writeSection(pdf, "Service Details", append([][2]string{
		{"Service Type:", b.ServiceType},
		{"Service Name:", b.ServiceName},
		{"Event Date:", b.Date},
	}, detailRows(b)...))

	if b.TotalAmount != "" {
		writeSection(pdf, "Payment Information", [][2]string{
			{"Total Amount:", "Rs." + b.TotalAmount},
		})
	}

	if b.Notes != "" {
		textColor(pdf, colorDark)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 18, "Additional Notes", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		pdf.SetTextColor(102, 102, 102)
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetX(70)
		pdf.MultiCell(470, 14, b.Notes, "", "L", false)
		pdf.Ln(10)
	}

	pdf.Ln(20)
	stroke(pdf, colorGold)
	pdf.SetLineWidth(1)
	y = pdf.GetY()
	pdf.Line(50, y, 545, y)
	pdf.Ln(10)

	pdf.SetTextColor(102, 102, 102)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 14, "Thank you for choosing OM Service Pro!", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 14, "For any queries, please contact us:", "", 1, "C", false, 0, "")
	textColor(pdf, colorDark)
	pdf.CellFormat(0, 14, "contact@omservice.com | +91 98765 43210", "", 1, "C", false, 0, "")

	_, pageH := pdf.GetPageSize()
	pdf.SetTextColor(153, 153, 153)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetXY(50, pageH-50)
	pdf.CellFormat(500, 12, "Generated on "+time.Now().Format("1/2/2006, 3:04:05 PM"), "", 0, "C", false, 0, "")

	return pdf.Output(w)
}

func writeSection(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	textColor(pdf, colorDark)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 20, title, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetTextColor(51, 51, 51)
	for _, row := range rows {
		pdf.SetX(70)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(130, 15, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 15, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(14)
}

func detailRows(b *models.Booking) [][2]string {
	switch {
	case b.Details.Catering != nil:
		d := b.Details.Catering
		return [][2]string{
			{"Meal Type:", orNA(d.MealType)},
			{"Number of Guests:", orNAInt(d.Guests)},
			{"Event Duration:", orNA(d.EventDuration)},
		}
	case b.Details.Travel != nil:
		d := b.Details.Travel
		return [][2]string{
			{"Pickup Location:", orNA(d.PickupLocation)},
			{"Drop Destination:", orNA(d.DropDestination)},
			{"Travel Duration:", orNA(d.TravelDuration)},
			{"Passenger Count:", orNAInt(d.PassengerCount)},
		}
	case b.Details.Photography != nil:
		d := b.Details.Photography
		return [][2]string{
			{"Event Type:", orNA(d.EventType)},
			{"Duration:", orNA(d.Duration)},
		}
	case b.Details.SweetStall != nil:
		d := b.Details.SweetStall
		return [][2]string{
			{"Quantity:", orNA(d.Quantity)},
			{"Function Time:", orNA(d.FunctionTime)},
		}
	}
	return nil
}

func fill(pdf *gofpdf.Fpdf, c rgb)      { pdf.SetFillColor(c.r, c.g, c.b) }
func stroke(pdf *gofpdf.Fpdf, c rgb)    { pdf.SetDrawColor(c.r, c.g, c.b) }
func textColor(pdf *gofpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

func roundedRect(pdf *gofpdf.Fpdf, x, y, w, h, r float64, style string) {
	pdf.RoundedRect(x, y, w, h, r, "1234", style)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orNAInt(n int64) string {
	if n == 0 {
		return "N/A"
	}
	return strconv.FormatInt(n, 10)
}

func firstNonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
