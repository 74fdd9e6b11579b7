package models

const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

const (
	ServiceCatering    = "Catering"
	ServiceTravels     = "Travels"
	ServicePhotography = "Photography"
	ServiceSweetStall  = "Sweet Stall"
)

const (
	CategoryCatering    = "Catering"
	CategoryTravels     = "Travels"
	CategoryPhotography = "Photography"
	CategorySweets      = "Sweets"
)

const (
	// DefaultActor is recorded in status history when no admin id is supplied
	DefaultActor = "admin"

	// DefaultPageLimit is the page size for booking listings
	DefaultPageLimit = 20

	// MaxPartnerImages caps attachments on a partner application
	MaxPartnerImages = 5

	// ReviewFeedLimit is how many recent reviews the public feed returns
	ReviewFeedLimit = 10

	// EmailQueueSize is the buffer of the outgoing mail queue
	EmailQueueSize = 256

	// StatsCacheTTL время жизни кэша статистики в секундах
	StatsCacheTTL = 5 * 60
)

// Statuses lists the booking lifecycle values in display order.
var Statuses = []string{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// ServiceTypes lists the bookable service categories in display order.
var ServiceTypes = []string{ServiceCatering, ServiceTravels, ServicePhotography, ServiceSweetStall}

// PartnerCategories lists the valid partner application categories.
var PartnerCategories = []string{CategoryCatering, CategoryTravels, CategoryPhotography, CategorySweets}

// ValidStatus reports whether s is one of the fixed booking statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// ValidServiceType reports whether s is a known service type.
func ValidServiceType(s string) bool {
	for _, v := range ServiceTypes {
		if v == s {
			return true
		}
	}
	return false
}

// ValidPartnerCategory reports whether c is a known partner category.
func ValidPartnerCategory(c string) bool {
	for _, v := range PartnerCategories {
		if v == c {
			return true
		}
	}
	return false
}
