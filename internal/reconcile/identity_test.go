package reconcile

import (
	"testing"

	"github.com/Sguobi-git/Orders-App/internal/sheets"
	"github.com/stretchr/testify/assert"
)

func TestKeyOfUsesOnlyIdentityFields(t *testing.T) {
	a := sheets.Row{Columns: viewColumns, Values: []string{"101", "Section A", "Acme", "Chair", "White", "2", "In Process"}}
	b := sheets.Row{Columns: viewColumns, Values: []string{"101", "Section A", "Other Co", "Chair", "White", "9", "Delivered"}}

	assert.Equal(t, KeyOf(a), KeyOf(b))
	assert.Equal(t, Key{Booth: "101", Item: "Chair", Color: "White", Section: "Section A"}, KeyOf(a))

	reordered := sheets.Row{
		Columns: []string{"Status", "Color", "Item", "Section", "Booth #"},
		Values:  []string{"Delivered", "White", "Chair", "Section A", "101"},
	}
	assert.Equal(t, KeyOf(a), KeyOf(reordered))
}

func TestKeyString(t *testing.T) {
	k := Key{Booth: "101", Item: "Chair", Color: "White", Section: "Section A"}
	assert.Equal(t, "101|Chair|White|Section A", k.String())
}

func TestKeyMatches(t *testing.T) {
	k := Key{Booth: "101", Item: "Chair", Color: "White", Section: "Section A"}

	tests := []struct {
		name string
		row  sheets.Row
		want bool
	}{
		{"exact", sheets.Row{Columns: viewColumns, Values: []string{"101", "Section A", "Acme", "Chair", "White", "2", ""}}, true},
		{"other color", sheets.Row{Columns: viewColumns, Values: []string{"101", "Section A", "Acme", "Chair", "Black", "2", ""}}, false},
		{"other section", sheets.Row{Columns: viewColumns, Values: []string{"101", "Section B", "Acme", "Chair", "White", "2", ""}}, false},
		{"worksheet without section column", sheets.Row{Columns: []string{"Booth #", "Item", "Color"}, Values: []string{"101", "Chair", "White"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Matches(tt.row))
		})
	}
}
