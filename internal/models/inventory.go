package models

// Inventory columns of the "Show Inventory" worksheet
const (
	ColInvItem              = "Items"
	ColInvLoadList          = "Load List"
	ColInvPullList          = "Pull List"
	ColInvStarting          = "Starting Quantity"
	ColInvOrdered           = "Ordered items"
	ColInvDamaged           = "Damaged Items"
	ColInvAvailable         = "Available Quantity"
	ColInvRequested         = "Requested to the Warehouse"
	ColInvRequestedDateTime = "Requested Date and Time"
)

// LowStockThreshold marks items whose available quantity needs attention
const LowStockThreshold = 10

// InventoryItem is one line of the show inventory. Read-only for this service.
type InventoryItem struct {
	Name                 string `json:"name"`
	LoadList             int    `json:"loadList"`
	PullList             int    `json:"pullList"`
	StartingQuantity     int    `json:"startingQuantity"`
	OrderedItems         int    `json:"orderedItems"`
	DamagedItems         int    `json:"damagedItems"`
	AvailableQuantity    *int   `json:"availableQuantity"`
	RequestedToWarehouse string `json:"requestedToWarehouse"`
	RequestedAt          string `json:"requestedAt"`
}

// LowStock reports whether the item has fallen under the threshold.
// An unknown available quantity is never low.
func (i InventoryItem) LowStock() bool {
	return i.AvailableQuantity != nil && *i.AvailableQuantity < LowStockThreshold
}
