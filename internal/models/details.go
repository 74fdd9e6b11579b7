package models

// ServiceDetails carries the per-service payload of a booking.
// Exactly one variant is set, matching Booking.ServiceType.
type ServiceDetails struct {
	Catering    *CateringDetails    `json:"catering,omitempty"`
	Travel      *TravelDetails      `json:"travel,omitempty"`
	Photography *PhotographyDetails `json:"photography,omitempty"`
	SweetStall  *SweetStallDetails  `json:"sweetStall,omitempty"`
}

type CateringDetails struct {
	Guests        int64  `json:"guests,omitempty"`
	MealType      string `json:"mealType,omitempty"`
	EventDuration string `json:"eventDuration,omitempty"`
}

type TravelDetails struct {
	PickupLocation  string `json:"pickupLocation,omitempty"`
	DropDestination string `json:"dropDestination,omitempty"`
	TravelDuration  string `json:"travelDuration,omitempty"`
	PassengerCount  int64  `json:"passengerCount,omitempty"`
}

type PhotographyDetails struct {
	EventType string `json:"eventType,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

type SweetStallDetails struct {
	Quantity     string `json:"quantity,omitempty"`
	FunctionTime string `json:"functionTime,omitempty"`
}

// IsEmpty reports whether no variant is populated.
func (d ServiceDetails) IsEmpty() bool {
	return d.Catering == nil && d.Travel == nil && d.Photography == nil && d.SweetStall == nil
}
