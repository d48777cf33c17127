package model

import (
	"strings"
	"unicode/utf8"
)

// Location is a physical site that holds inventory.  Locations are not
// owned by a user; only admins create or change them.
type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	State    string `json:"state"`
	ZipCode  int    `json:"zip_code"`
	Capacity int    `json:"capacity"`
}

// Validate checks the field invariants of a location record.
func (l Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return invalid("name", "is required")
	}
	if strings.TrimSpace(l.Address) == "" {
		return invalid("address", "is required")
	}
	if utf8.RuneCountInString(l.State) != 2 {
		return invalid("state", "must be exactly 2 characters")
	}
	if l.ZipCode < 10000 || l.ZipCode > 99999 {
		return invalid("zip_code", "must be between 10000 and 99999")
	}
	if l.Capacity < 0 {
		return invalid("capacity", "must be >= 0")
	}
	return nil
}

// LocationPatch carries a partial update; nil fields keep their value.
type LocationPatch struct {
	Name     *string `json:"name"`
	Address  *string `json:"address"`
	State    *string `json:"state"`
	ZipCode  *int    `json:"zip_code"`
	Capacity *int    `json:"capacity"`
}

// Apply returns cur with every set field of p copied over it.
func (p LocationPatch) Apply(cur Location) Location {
	if p.Name != nil {
		cur.Name = *p.Name
	}
	if p.Address != nil {
		cur.Address = *p.Address
	}
	if p.State != nil {
		cur.State = *p.State
	}
	if p.ZipCode != nil {
		cur.ZipCode = *p.ZipCode
	}
	if p.Capacity != nil {
		cur.Capacity = *p.Capacity
	}
	return cur
}
