package models

import (
	"strings"
	"time"
)

// Booking is a customer's request for a dated service.
type Booking struct {
	ID            string         `json:"id"`
	ServiceType   string         `json:"serviceType"`
	ServiceName   string         `json:"serviceName"`
	Name          string         `json:"name"`
	Age           int64          `json:"age,omitempty"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email,omitempty"`
	Address       string         `json:"address,omitempty"`
	Date          string         `json:"date,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	TotalAmount   string         `json:"totalAmount,omitempty"`
	Status        string         `json:"status"`
	StatusHistory []StatusChange `json:"statusHistory"`
	Details       ServiceDetails `json:"details"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// StatusChange is one entry of the append-only status audit log.
type StatusChange struct {
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changedAt"`
	ChangedBy string    `json:"changedBy,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// ShortID returns the last 8 characters of the id, uppercased.
// Export surfaces show this form instead of the full id.
func (b *Booking) ShortID() string {
	id := strings.ReplaceAll(b.ID, "-", "")
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// CurrentHistoryStatus returns the status of the last history entry,
// or "" when the history is empty.
func (b *Booking) CurrentHistoryStatus() string {
	if len(b.StatusHistory) == 0 {
		return ""
	}
	return b.StatusHistory[len(b.StatusHistory)-1].Status
}
