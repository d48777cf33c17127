package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationValidate(t *testing.T) {
	base := Location{Name: "Main St", Address: "1 Main St", State: "CA", ZipCode: 94105, Capacity: 100}

	tests := []struct {
		name  string
		edit  func(*Location)
		field string
	}{
		{"valid", func(*Location) {}, ""},
		{"blank name", func(l *Location) { l.Name = "" }, "name"},
		{"blank address", func(l *Location) { l.Address = " " }, "address"},
		{"short state", func(l *Location) { l.State = "C" }, "state"},
		{"long state", func(l *Location) { l.State = "CAL" }, "state"},
		{"zip too small", func(l *Location) { l.ZipCode = 9999 }, "zip_code"},
		{"zip too large", func(l *Location) { l.ZipCode = 100000 }, "zip_code"},
		{"negative capacity", func(l *Location) { l.Capacity = -1 }, "capacity"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := base
			tc.edit(&l)
			err := l.Validate()
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestLocationPatchApply(t *testing.T) {
	cur := Location{ID: "4", Name: "Old", Address: "2 Elm", State: "NY", ZipCode: 10001, Capacity: 5}
	capacity := 50
	got := LocationPatch{Capacity: &capacity}.Apply(cur)
	assert.Equal(t, Location{ID: "4", Name: "Old", Address: "2 Elm", State: "NY", ZipCode: 10001, Capacity: 50}, got)
}

func TestParseStoreAndRole(t *testing.T) {
	s, err := ParseStore("mysql")
	require.NoError(t, err)
	assert.Equal(t, StoreRelational, s)
	s, err = ParseStore("mongodb")
	require.NoError(t, err)
	assert.Equal(t, StoreDocument, s)
	_, err = ParseStore("postgres")
	assert.Error(t, err)

	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.True(t, r.IsAdmin())
	r, err = ParseRole("user")
	require.NoError(t, err)
	assert.False(t, r.IsAdmin())
	_, err = ParseRole("root")
	assert.Error(t, err)
}
