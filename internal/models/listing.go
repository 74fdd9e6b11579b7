package models

import "time"

// ServiceListing is the public catalog page of one service category:
// gallery images, a running discount and the offered packages. Exactly
// one listing exists per category; writes upsert.
type ServiceListing struct {
	Category    string           `json:"category"`
	Images      []string         `json:"images,omitempty"`
	Discount    string           `json:"discount,omitempty"`
	Description string           `json:"description,omitempty"`
	Packages    []ServicePackage `json:"packages,omitempty"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type ServicePackage struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features,omitempty"`
}
