package database

import (
	"strings"
	"time"

	"omservice/internal/models"
)

// BookingFilter translates list query parameters into a storage-layer
// predicate. The zero value matches everything on page 1.
type BookingFilter struct {
	ServiceType string
	Status      string
	Search      string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Limit       int
}

// Normalize returns page and limit with defaults applied.
func (f BookingFilter) Normalize() (page, limit int) {
	page = f.Page
	if page < 1 {
		page = 1
	}
	limit = f.Limit
	if limit < 1 {
		limit = models.DefaultPageLimit
	}
	return page, limit
}

// Offset returns the number of rows to skip for the requested page.
func (f BookingFilter) Offset() int {
	page, limit := f.Normalize()
	return (page - 1) * limit
}

// BuildWhere produces the WHERE clause (without the keyword) and its
// arguments. An empty clause means no restriction. Pure function: no
// side effects, deterministic for a given filter.
func (f BookingFilter) BuildWhere() (string, []any) {
	var conds []string
	var args []any

	if f.ServiceType != "" {
		conds = append(conds, "service_type = ?")
		args = append(args, f.ServiceType)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Search != "" {
		// Case-insensitive substring match over name OR phone OR email.
		needle := "%" + strings.ToLower(f.Search) + "%"
		conds = append(conds, "(LOWER(name) LIKE ? OR LOWER(phone) LIKE ? OR LOWER(email) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if f.StartDate != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, *f.StartDate)
	}
	if f.EndDate != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, *f.EndDate)
	}

	return strings.Join(conds, " AND "), args
}

// Pages returns the total page count: ceil(total / limit).
func Pages(total, limit int) int {
	if limit < 1 {
		limit = models.DefaultPageLimit
	}
	return (total + limit - 1) / limit
}
