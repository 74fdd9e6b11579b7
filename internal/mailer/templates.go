package mailer

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"omservice/internal/models"
)

// detailRow is one label/value line inside the details card.
type detailRow struct {
	Label string
	Value string
}

var bookingTemplate = template.Must(template.New("booking").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f4f4f4; margin: 0; padding: 0; }
  .container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 10px; overflow: hidden; }
  .header { background: #1a1a1a; padding: 30px 20px; text-align: center; }
  .logo-text { color: #FFD700; font-size: 28px; font-weight: bold; margin: 0; letter-spacing: 2px; text-transform: uppercase; }
  .subtitle { color: #cccccc; margin: 5px 0 0; font-size: 14px; }
  .content { padding: 40px 30px; }
  .details-card { background: #f9f9f9; border-left: 4px solid #FFD700; padding: 25px; border-radius: 4px; margin-bottom: 30px; }
  .detail-row { display: flex; justify-content: space-between; margin-bottom: 10px; border-bottom: 1px solid #eee; padding-bottom: 5px; }
  .detail-label { color: #777; font-weight: 500; }
  .detail-value { color: #333; font-weight: bold; }
  .contact-box { background: #fff8e1; border: 1px dashed #FFD700; padding: 20px; text-align: center; border-radius: 8px; margin-top: 30px; }
  .contact-number { font-size: 24px; color: #1a1a1a; font-weight: bold; text-decoration: none; display: block; margin-top: 5px; }
  .footer { background: #f5f5f5; padding: 20px; text-align: center; font-size: 12px; color: #888; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1 class="logo-text">OM SERVICE</h1>
    <p class="subtitle">Premium Quality Service</p>
  </div>
  <div class="content">
    <h2>Booking Confirmed</h2>
    <p>Thank you for choosing <strong>Om Services</strong>, <strong>{{.Name}}</strong>.</p>
    <p>You have booked our <strong>Premium Quality</strong> service. Our team will ensure everything is perfect for your special day.</p>
    <div class="details-card">
      <h3>Booking Details</h3>
      {{range .Rows}}<div class="detail-row">
        <span class="detail-label">{{.Label}}:</span>
        <span class="detail-value">{{.Value}}</span>
      </div>
      {{end}}
    </div>
    <div class="contact-box">
      <p style="margin: 0; color: #555;">Any doubts? Call us directly at:</p>
      <a href="tel:9042195722" class="contact-number">9042195722</a>
    </div>
  </div>
  <div class="footer"><p>Om Services Team</p></div>
</div>
</body>
</html>`))

var partnerTemplate = template.Must(template.New("partner").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f4f4f4; margin: 0; padding: 0; }
  .container { max-width: 600px; margin: 20px auto; background: #ffffff; border-radius: 10px; overflow: hidden; }
  .header { background: #37023e; padding: 30px 20px; text-align: center; }
  .logo-text { color: #FFD700; font-size: 28px; font-weight: bold; margin: 0; letter-spacing: 2px; text-transform: uppercase; }
  .subtitle { color: #cccccc; margin: 5px 0 0; font-size: 14px; }
  .content { padding: 40px 30px; }
  .welcome-text { font-size: 24px; color: #37023e; font-weight: bold; text-align: center; margin-bottom: 20px; }
  .message-body { font-size: 16px; color: #555; text-align: center; margin-bottom: 30px; }
  .contact-box { background: #fff8e1; border: 1px dashed #FFD700; padding: 20px; text-align: center; border-radius: 8px; margin-top: 30px; }
  .contact-number { font-size: 24px; color: #1a1a1a; font-weight: bold; text-decoration: none; display: block; margin-top: 5px; }
  .footer { background: #f5f5f5; padding: 20px; text-align: center; font-size: 12px; color: #888; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1 class="logo-text">OM SERVICE</h1>
    <p class="subtitle">Join Our Network</p>
  </div>
  <div class="content">
    <div class="welcome-text">You Join Our Squad!</div>
    <div class="message-body">
      <p>Welcome <strong>{{.Name}}</strong>,</p>
      <p>Thank you for your interest in partnering with us for <strong>{{.Category}}</strong>.</p>
      <p>Our team will contact you soon to verify your details and onboard you.</p>
    </div>
    <div class="contact-box">
      <p style="margin: 0; color: #555;">Any doubts? Call us directly at:</p>
      <a href="tel:9042195722" class="contact-number">9042195722</a>
    </div>
  </div>
  <div class="footer"><p>Om Services Team</p></div>
</div>
</body>
</html>`))

// BookingConfirmation renders the confirmation email for a booking.
// Optional detail rows appear only when the booking carries a value.
func BookingConfirmation(b *models.Booking) (Message, error) {
	service := b.ServiceName
	if service == "" {
		service = b.ServiceType
	}

	rows := []detailRow{
		{"Service Type", b.ServiceType},
		{"Package", b.ServiceName},
		{"Date", b.Date},
	}
	rows = append(rows, bookingDetailRows(b)...)
	if b.Notes != "" {
		rows = append(rows, detailRow{"Notes", b.Notes})
	}
	if b.Phone != "" {
		rows = append(rows, detailRow{"Phone", b.Phone})
	}

	var body strings.Builder
	err := bookingTemplate.Execute(&body, struct {
		Name string
		Rows []detailRow
	}{Name: b.Name, Rows: rows})
	if err != nil {
		return Message{}, fmt.Errorf("render booking email: %w", err)
	}

	return Message{
		To:      b.Email,
		Subject: "Booking Confirmation - " + service,
		HTML:    body.String(),
	}, nil
}

// PartnerWelcome renders the welcome email for a new partner
// application.
func PartnerWelcome(p *models.Partner) (Message, error) {
	var body strings.Builder
	err := partnerTemplate.Execute(&body, struct {
		Name     string
		Category string
	}{Name: p.Name, Category: p.Category})
	if err != nil {
		return Message{}, fmt.Errorf("render partner email: %w", err)
	}

	return Message{
		To:      p.Email,
		Subject: fmt.Sprintf("Welcome to the Squad! - %s Partner", p.Category),
		HTML:    body.String(),
	}, nil
}

func bookingDetailRows(b *models.Booking) []detailRow {
	var rows []detailRow
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, detailRow{label, value})
		}
	}

	switch {
	case b.Details.Catering != nil:
		d := b.Details.Catering
		if d.Guests > 0 {
			add("Guests", strconv.FormatInt(d.Guests, 10))
		}
		add("Meal Type", d.MealType)
	case b.Details.Travel != nil:
		d := b.Details.Travel
		add("Pickup", d.PickupLocation)
		add("Drop", d.DropDestination)
	case b.Details.Photography != nil:
		add("Event Type", b.Details.Photography.EventType)
	case b.Details.SweetStall != nil:
		add("Time", b.Details.SweetStall.FunctionTime)
	}
	return rows
}
