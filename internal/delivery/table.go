// Package delivery answers pincode serviceability questions from a static
// table, behind an artificial network delay.
package delivery

import (
	"time"

	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// Fallback values for pincodes missing from the table.
const (
	DefaultETADays = 5
	pincodeLength  = 6
)

// Zone is one known delivery destination.
type Zone struct {
	City    string
	ETADays int
	Express bool
}

var zones = map[string]Zone{
	"110001": {City: "New Delhi", ETADays: 2, Express: true},
	"400001": {City: "Mumbai", ETADays: 2, Express: true},
	"560001": {City: "Bangalore", ETADays: 3, Express: true},
	"600001": {City: "Chennai", ETADays: 3, Express: true},
	"700001": {City: "Kolkata", ETADays: 4, Express: false},
	"500001": {City: "Hyderabad", ETADays: 3, Express: true},
	"411001": {City: "Pune", ETADays: 3, Express: true},
	"380001": {City: "Ahmedabad", ETADays: 4, Express: false},
	"302001": {City: "Jaipur", ETADays: 4, Express: false},
	"226001": {City: "Lucknow", ETADays: 5, Express: false},
}

// Estimate is the serviceability answer for one pincode.
type Estimate struct {
	Pincode     string `json:"pincode"`
	City        string `json:"city,omitempty"`
	Serviceable bool   `json:"serviceable"`
	ETADays     int    `json:"etaDays"`
	Express     bool   `json:"express"`
	// Known is false when the pincode is not in the table and defaults applied.
	Known bool `json:"known"`
}

// ArrivesBy returns the calendar day the order arrives when placed at now.
func (e Estimate) ArrivesBy(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+e.ETADays, 0, 0, 0, 0, now.Location())
}

// ValidPincode reports whether pin is exactly six ASCII digits.
func ValidPincode(pin string) bool {
	if len(pin) != pincodeLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

// Resolve answers from the table without any delay. Unknown pincodes are
// serviceable in DefaultETADays without express delivery.
func Resolve(pin string) (Estimate, error) {
	if !ValidPincode(pin) {
		return Estimate{}, pkgerrors.New(pkgerrors.CodeValidation, "pincode must be 6 digits").
			WithDetails(map[string]string{"pincode": pin})
	}
	zone, ok := zones[pin]
	if !ok {
		return Estimate{Pincode: pin, Serviceable: true, ETADays: DefaultETADays}, nil
	}
	return Estimate{
		Pincode:     pin,
		City:        zone.City,
		Serviceable: true,
		ETADays:     zone.ETADays,
		Express:     zone.Express,
		Known:       true,
	}, nil
}
