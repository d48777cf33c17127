package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInventory() Inventory {
	return Inventory{
		UserID:            7,
		LocationID:        1,
		Name:              "Lens A",
		Quantity:          10,
		Description:       "single vision",
		Price:             20.0,
		Width:             5.0,
		PrescriptionAvail: true,
	}
}

func TestInventoryValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Inventory)
		field string
	}{
		{"valid", func(*Inventory) {}, ""},
		{"zero values allowed", func(i *Inventory) { i.Quantity, i.Price, i.Width = 0, 0, 0 }, ""},
		{"blank name", func(i *Inventory) { i.Name = "  " }, "name"},
		{"missing location", func(i *Inventory) { i.LocationID = 0 }, "location_id"},
		{"negative quantity", func(i *Inventory) { i.Quantity = -1 }, "quantity"},
		{"negative price", func(i *Inventory) { i.Price = -0.01 }, "price"},
		{"negative width", func(i *Inventory) { i.Width = -3 }, "width"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv := validInventory()
			tc.edit(&inv)
			err := inv.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "expected ValidationError, got %v", err)
			assert.Equal(t, tc.field, ve.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestInventoryPatchApply_KeepsUnsetFields(t *testing.T) {
	cur := validInventory()
	cur.ID = "12"
	qty := int64(5)

	got := InventoryPatch{Quantity: &qty}.Apply(cur)

	assert.Equal(t, int64(5), got.Quantity)
	assert.Equal(t, 20.0, got.Price)
	assert.Equal(t, "Lens A", got.Name)
	assert.Equal(t, "12", got.ID)
	assert.Equal(t, int64(7), got.UserID)
	assert.True(t, got.PrescriptionAvail)
}

func TestInventoryPatchApply_AllFields(t *testing.T) {
	name, desc := "Lens B", "bifocal"
	loc, qty := int64(3), int64(0)
	price, width := 99.5, 6.25
	yes, no := true, false

	got := InventoryPatch{
		Name: &name, LocationID: &loc, Quantity: &qty, Description: &desc,
		Price: &price, Width: &width, PrescriptionAvail: &no,
		Tinted: &yes, Polarized: &yes, AntiGlare: &yes,
	}.Apply(validInventory())

	assert.Equal(t, Inventory{
		UserID: 7, LocationID: 3, Name: "Lens B", Quantity: 0, Description: "bifocal",
		Price: 99.5, Width: 6.25, PrescriptionAvail: false, Tinted: true, Polarized: true, AntiGlare: true,
	}, got)
}
