package models

import "time"

// Review is a customer rating, optionally tied to a service type.
type Review struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment,omitempty"`
	ServiceType string    `json:"serviceType,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
