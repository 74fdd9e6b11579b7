package models

import "time"

// Partner is an application to join the service-provider network.
// Partners have no status lifecycle; the record is created once.
type Partner struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Details  string `json:"details,omitempty"`

	// Category-specific optional fields.
	TeamSize     string `json:"teamSize,omitempty"`     // Catering
	MenuItems    string `json:"menuItems,omitempty"`    // Catering
	VehicleModel string `json:"vehicleModel,omitempty"` // Travels
	CameraModel  string `json:"cameraModel,omitempty"`  // Photography
	SweetType    string `json:"sweetType,omitempty"`    // Sweets

	Images    []string  `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
