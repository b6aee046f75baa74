// Package alerts persists price-drop alerts. An alert's target is always
// below the price captured when it was created.
package alerts

import (
	"slices"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

// StoreName is the blob key of the alert list.
const StoreName = "price_alerts"

// Alert watches one product for a price at or below TargetPrice.
type Alert struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"productId"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	CurrentPrice int64     `json:"currentPrice"`
	TargetPrice  int64     `json:"targetPrice"`
	CreatedAt    time.Time `json:"createdAt"`
	// Notified is reserved for an external notifier and never changed here.
	Notified bool `json:"notified"`
}

// State holds alerts in creation order. Several alerts may watch one product.
type State struct {
	Alerts []Alert `json:"alerts"`
}

// Empty returns a state with no alerts.
func Empty() State {
	return State{Alerts: []Alert{}}
}

// NewAlert validates target against the snapshot price and builds an alert.
func NewAlert(id string, snap catalog.Snapshot, target int64, at time.Time) (Alert, error) {
	if target <= 0 {
		return Alert{}, pkgerrors.New(pkgerrors.CodeValidation, "target price must be positive").
			WithDetails(map[string]any{"targetPrice": target})
	}
	if target >= snap.Price {
		return Alert{}, pkgerrors.New(pkgerrors.CodeValidation, "target price must be below the current price").
			WithDetails(map[string]any{"targetPrice": target, "currentPrice": snap.Price})
	}
	return Alert{
		ID:           id,
		ProductID:    snap.ProductID,
		Name:         snap.Name,
		Category:     snap.Category,
		Image:        snap.Image,
		CurrentPrice: snap.Price,
		TargetPrice:  target,
		CreatedAt:    at,
	}, nil
}

// Create appends a validated alert.
func (s State) Create(alert Alert) State {
	return State{Alerts: append(slices.Clone(s.Alerts), alert)}
}

// Remove drops the alert with alertID.
func (s State) Remove(alertID string) State {
	return State{Alerts: slices.DeleteFunc(slices.Clone(s.Alerts), func(a Alert) bool {
		return a.ID == alertID
	})}
}

// RemoveForProduct drops every alert watching productID.
func (s State) RemoveForProduct(productID string) State {
	return State{Alerts: slices.DeleteFunc(slices.Clone(s.Alerts), func(a Alert) bool {
		return a.ProductID == productID
	})}
}

func (s State) Clear() State {
	return Empty()
}

// ForProduct lists the alerts watching productID.
func (s State) ForProduct(productID string) []Alert {
	var out []Alert
	for _, a := range s.Alerts {
		if a.ProductID == productID {
			out = append(out, a)
		}
	}
	return out
}

// Has reports whether any alert watches productID.
func (s State) Has(productID string) bool {
	return slices.ContainsFunc(s.Alerts, func(a Alert) bool { return a.ProductID == productID })
}

// Triggered lists alerts whose target is met by the price returned from
// priceOf. Products priceOf does not know are skipped.
func (s State) Triggered(priceOf func(productID string) (int64, bool)) []Alert {
	var out []Alert
	for _, a := range s.Alerts {
		price, ok := priceOf(a.ProductID)
		if ok && price <= a.TargetPrice {
			out = append(out, a)
		}
	}
	return out
}

// Sanitize drops alerts that break the creation invariant or lack ids.
func Sanitize(s State) State {
	out := Empty()
	for _, a := range s.Alerts {
		if strings.TrimSpace(a.ID) == "" || strings.TrimSpace(a.ProductID) == "" {
			continue
		}
		if a.TargetPrice <= 0 || a.TargetPrice >= a.CurrentPrice {
			continue
		}
		out.Alerts = append(out.Alerts, a)
	}
	return out
}
