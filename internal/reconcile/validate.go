package reconcile

import (
	"fmt"
	"strings"

	"github.com/Sguobi-git/Orders-App/internal/models"
)

// NormalizeOrder trims free text, canonicalizes enums and rejects an order
// that must not reach the spreadsheet.
func NormalizeOrder(o models.Order) (models.Order, error) {
	o.Booth = strings.TrimSpace(o.Booth)
	o.Section = strings.TrimSpace(o.Section)
	o.Exhibitor = strings.TrimSpace(o.Exhibitor)
	o.Item = strings.TrimSpace(o.Item)
	o.Color = strings.TrimSpace(o.Color)
	o.Comments = strings.TrimSpace(o.Comments)

	if o.Booth == "" {
		return o, &ValidationError{Field: models.ColBooth, Message: "booth number is required"}
	}
	if o.Item == "" {
		return o, &ValidationError{Field: models.ColItem, Message: "item is required"}
	}
	if o.Item == models.UnlistedItem && o.Comments == "" {
		return o, &ValidationError{Field: models.ColComments, Message: "describe the unlisted item in the comments"}
	}
	if o.Quantity < 1 {
		return o, &ValidationError{Field: models.ColQuantity, Message: "quantity must be at least 1"}
	}
	if o.BoomersQuantity < 1 {
		return o, &ValidationError{Field: models.ColBoomersQuantity, Message: "boomer's quantity must be at least 1"}
	}

	if o.Status == "" {
		o.Status = models.StatusInProcess
	}
	status, ok := models.ParseStatus(string(o.Status), models.FormStatuses)
	if !ok {
		return o, &ValidationError{Field: models.ColStatus, Message: fmt.Sprintf("unknown status %q", o.Status)}
	}
	o.Status = status

	if o.Type == "" {
		o.Type = models.TypeNewOrder
	}
	typ, ok := models.ParseOrderType(string(o.Type))
	if !ok {
		return o, &ValidationError{Field: models.ColType, Message: fmt.Sprintf("unknown order type %q", o.Type)}
	}
	o.Type = typ

	return o, nil
}
