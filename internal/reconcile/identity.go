// Package reconcile matches an edited order table back to spreadsheet rows,
// decides what changed and dispatches the resulting mutations.
package reconcile

import (
	"strings"

	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// Key is the business identity of an order row. It is not unique: two rows
// that agree on all four fields cannot be told apart.
type Key struct {
	Booth   string `json:"booth"`
	Item    string `json:"item"`
	Color   string `json:"color"`
	Section string `json:"section"`
}

// KeyOf reads the identity fields of a row. Row position never enters the key.
func KeyOf(r sheets.Row) Key {
	return Key{
		Booth:   r.Value(models.ColBooth),
		Item:    r.Value(models.ColItem),
		Color:   r.Value(models.ColColor),
		Section: r.Value(models.ColSection),
	}
}

// String renders the key in a stable form used for confirmation matching
func (k Key) String() string {
	return strings.Join([]string{k.Booth, k.Item, k.Color, k.Section}, "|")
}

func (k Key) fields() [4][2]string {
	return [4][2]string{
		{models.ColBooth, k.Booth},
		{models.ColItem, k.Item},
		{models.ColColor, k.Color},
		{models.ColSection, k.Section},
	}
}

// Matches reports whether a spreadsheet row carries this key.
// A field whose column the worksheet lacks is not compared.
func (k Key) Matches(r sheets.Row) bool {
	for _, f := range k.fields() {
		v, ok := r.Get(f[0])
		if ok && v != f[1] {
			return false
		}
	}
	return true
}

// Matcher adapts Matches for sheets.Book lookups
func (k Key) Matcher() sheets.Matcher {
	return k.Matches
}
