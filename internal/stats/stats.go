// Package stats computes aggregate figures over a booking snapshot.
// Everything here is pure: one pass over the input, no storage access,
// deterministic output for a given slice.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"omservice/internal/models"
	"omservice/internal/money"
)

type ServiceStat struct {
	ServiceType string  `json:"serviceType"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

type StatusStat struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type MonthStat struct {
	Year        int        `json:"year"`
	Month       time.Month `json:"month"`
	Count       int        `json:"count"`
	TotalAmount float64    `json:"totalAmount"`
}

// Label renders the month for chart axes, e.g. "Jan 2026".
func (m MonthStat) Label() string {
	return m.Month.String()[:3] + " " + time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

type CustomerStat struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Count       int     `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// Summary is a full aggregation snapshot. It serializes cleanly so the
// repository layer can cache it as JSON.
type Summary struct {
	TotalBookings   int     `json:"total"`
	TotalRevenue    float64 `json:"totalRevenue"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	// ConversionRate counts bookings whose status is the literal "Done".
	// That value never appears in the status enum, so this stays at 0 in
	// practice; the historical reports were built against it and the
	// figure is kept as-is rather than silently redefined.
	ConversionRate int            `json:"conversionRate"`
	ByService      []ServiceStat  `json:"byService"`
	ByStatus       []StatusStat   `json:"byStatus"`
	Monthly        []MonthStat    `json:"monthly"`
	Customers      []CustomerStat `json:"customers"`
}

// Summarize aggregates a booking snapshot. Slices keep first-encounter
// order except Monthly (newest first, capped at 12) and Customers
// (booking count descending, stable on ties).
func Summarize(bookings []models.Booking) Summary {
	s := Summary{TotalBookings: len(bookings)}

	serviceIdx := make(map[string]int)
	statusIdx := make(map[string]int)
	monthTotals := make(map[[2]int]*MonthStat)
	customerIdx := make(map[string]int)
	done := 0

	for _, b := range bookings {
		amount := money.ParseAmount(b.TotalAmount)
		s.TotalRevenue += amount

		if i, ok := serviceIdx[b.ServiceType]; ok {
			s.ByService[i].Count++
			s.ByService[i].TotalAmount += amount
		} else {
			serviceIdx[b.ServiceType] = len(s.ByService)
			s.ByService = append(s.ByService, ServiceStat{ServiceType: b.ServiceType, Count: 1, TotalAmount: amount})
		}

		if i, ok := statusIdx[b.Status]; ok {
			s.ByStatus[i].Count++
		} else {
			statusIdx[b.Status] = len(s.ByStatus)
			s.ByStatus = append(s.ByStatus, StatusStat{Status: b.Status, Count: 1})
		}

		if b.Status == "Done" {
			done++
		}

		key := [2]int{b.CreatedAt.Year(), int(b.CreatedAt.Month())}
		if m, ok := monthTotals[key]; ok {
			m.Count++
			m.TotalAmount += amount
		} else {
			monthTotals[key] = &MonthStat{Year: key[0], Month: time.Month(key[1]), Count: 1, TotalAmount: amount}
		}

		ck := customerKey(b)
		if i, ok := customerIdx[ck]; ok {
			s.Customers[i].Count++
			s.Customers[i].TotalAmount += amount
		} else {
			customerIdx[ck] = len(s.Customers)
			s.Customers = append(s.Customers, CustomerStat{Name: b.Name, Email: b.Email, Count: 1, TotalAmount: amount})
		}
	}

	for _, m := range monthTotals {
		s.Monthly = append(s.Monthly, *m)
	}
	sort.Slice(s.Monthly, func(i, j int) bool {
		if s.Monthly[i].Year != s.Monthly[j].Year {
			return s.Monthly[i].Year > s.Monthly[j].Year
		}
		return s.Monthly[i].Month > s.Monthly[j].Month
	})
	if len(s.Monthly) > 12 {
		s.Monthly = s.Monthly[:12]
	}

	sort.SliceStable(s.Customers, func(i, j int) bool {
		return s.Customers[i].Count > s.Customers[j].Count
	})

	s.UniqueCustomers = len(customerIdx)
	if s.TotalBookings > 0 {
		s.ConversionRate = int(math.Round(float64(done) / float64(s.TotalBookings) * 100))
	}
	return s
}

// TopService returns the service with the most bookings; the first one
// encountered wins ties. ok is false for an empty snapshot.
func (s Summary) TopService() (ServiceStat, bool) {
	if len(s.ByService) == 0 {
		return ServiceStat{}, false
	}
	top := s.ByService[0]
	for _, svc := range s.ByService[1:] {
		if svc.Count > top.Count {
			top = svc
		}
	}
	return top, true
}

// TopCustomers returns at most n customers ranked by booking count.
func (s Summary) TopCustomers(n int) []CustomerStat {
	if n > len(s.Customers) {
		n = len(s.Customers)
	}
	return s.Customers[:n]
}

// LastMonths returns up to n of the most recent months in chronological
// order, ready for a left-to-right chart.
func (s Summary) LastMonths(n int) []MonthStat {
	if n > len(s.Monthly) {
		n = len(s.Monthly)
	}
	out := make([]MonthStat, n)
	for i := 0; i < n; i++ {
		out[i] = s.Monthly[n-1-i]
	}
	return out
}

func customerKey(b models.Booking) string {
	if b.Email != "" {
		return strings.ToLower(b.Email)
	}
	return b.Name
}
