package model

import "strings"

// Inventory is a stock item kept at a location and owned by the user who
// created it.  The same logical item exists once in each store; ID is the
// store-assigned key and differs between the two.
type Inventory struct {
	ID                string  `json:"id"`
	UserID            int64   `json:"user_id"`
	LocationID        int64   `json:"location_id"`
	Name              string  `json:"name"`
	Quantity          int64   `json:"quantity"`
	Description       string  `json:"description"`
	Price             float64 `json:"price"`
	Width             float64 `json:"width"`
	PrescriptionAvail bool    `json:"prescription_avail"`
	Tinted            bool    `json:"tinted"`
	Polarized         bool    `json:"polarized"`
	AntiGlare         bool    `json:"anti_glare"`
}

// Validate checks the field invariants of an inventory record.
func (i Inventory) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return invalid("name", "is required")
	}
	if i.LocationID <= 0 {
		return invalid("location_id", "must be a positive location id")
	}
	if i.Quantity < 0 {
		return invalid("quantity", "must be >= 0")
	}
	if i.Price < 0 {
		return invalid("price", "must be >= 0")
	}
	if i.Width < 0 {
		return invalid("width", "must be >= 0")
	}
	return nil
}

// InventoryPatch carries a partial update.  A nil field keeps the current
// value; owner and id are never patchable.
type InventoryPatch struct {
	Name              *string  `json:"name"`
	LocationID        *int64   `json:"location_id"`
	Quantity          *int64   `json:"quantity"`
	Description       *string  `json:"description"`
	Price             *float64 `json:"price"`
	Width             *float64 `json:"width"`
	PrescriptionAvail *bool    `json:"prescription_avail"`
	Tinted            *bool    `json:"tinted"`
	Polarized         *bool    `json:"polarized"`
	AntiGlare         *bool    `json:"anti_glare"`
}

// Apply returns cur with every set field of p copied over it.
func (p InventoryPatch) Apply(cur Inventory) Inventory {
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.LocationID != nil {
		cur.LocationID = *p.LocationID
	}
	if p.Quantity != nil {
		cur.Quantity = *p.Quantity
	}
	if p.Description != nil {
		cur.Description = *p.Description
	}
	if p.Price != nil {
		cur.Price = *p.Price
	}
	if p.Width != nil {
		cur.Width = *p.Width
	}
	if p.PrescriptionAvail != nil {
		cur.PrescriptionAvail = *p.PrescriptionAvail
	}
	if p.Tinted != nil {
		cur.Tinted = *p.Tinted
	}
	if p.Polarized != nil {
		cur.Polarized = *p.Polarized
	}
	if p.AntiGlare != nil {
		cur.AntiGlare = *p.AntiGlare
	}
	return cur
}
