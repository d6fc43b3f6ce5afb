package models

import (
	"strconv"
	"strings"
)

// Worksheet names in the orders spreadsheet
const (
	OrdersWorksheet    = "Orders"
	InventoryWorksheet = "Show Inventory"
	SectionPrefix      = "Section"
	NoSectionWorksheet = "No Section"
)

// Order columns as they appear in the worksheet header
const (
	ColBooth           = "Booth #"
	ColSection         = "Section"
	ColExhibitor       = "Exhibitor Name"
	ColItem            = "Item"
	ColColor           = "Color"
	ColQuantity        = "Quantity"
	ColDate            = "Date"
	ColHour            = "Hour"
	ColStatus          = "Status"
	ColType            = "Type"
	ColBoomersQuantity = "Boomer's Quantity"
	ColComments        = "Comments"
	ColUser            = "User"
)

// OrderColumns is the canonical column order of the Orders worksheet
var OrderColumns = []string{
	ColBooth, ColSection, ColExhibitor, ColItem, ColColor, ColQuantity,
	ColDate, ColHour, ColStatus, ColType, ColBoomersQuantity, ColComments, ColUser,
}

// Date and hour layouts written by the add flow
const (
	OrderDateLayout = "01/02/2006"
	OrderHourLayout = "03:04:05 PM"
)

// UnlistedItem is the sentinel item that requires a comment describing it
const UnlistedItem = "Unlisted Item - See the Comments"

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	StatusInProcess      OrderStatus = "In Process"
	StatusInRoute        OrderStatus = "In route from warehouse"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusReceived       OrderStatus = "Received"
	StatusOutForDelivery OrderStatus = "Out for delivery"
)

// EditableStatuses are the values offered by the order table editor
var EditableStatuses = []OrderStatus{
	StatusInProcess, StatusInRoute, StatusDelivered, StatusCancelled, StatusReceived,
}

// FormStatuses are the values accepted when adding a new order
var FormStatuses = []OrderStatus{
	StatusDelivered, StatusReceived, StatusInRoute, StatusInProcess, StatusOutForDelivery, StatusCancelled,
}

// ParseStatus matches s against allowed, ignoring case and surrounding space.
// The canonical spelling is returned so "cancelled" becomes "Cancelled".
func ParseStatus(s string, allowed []OrderStatus) (OrderStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range allowed {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// OrderType defines the type of order
type OrderType string

const (
	TypeNewOrder    OrderType = "New Order"
	TypeMissingItem OrderType = "Missing Item"
	TypeRemove      OrderType = "Remove"
)

// OrderTypes lists every accepted order type
var OrderTypes = []OrderType{TypeNewOrder, TypeMissingItem, TypeRemove}

// ParseOrderType trims and canonicalizes an order type
func ParseOrderType(s string) (OrderType, bool) {
	s = strings.TrimSpace(s)
	for _, t := range OrderTypes {
		if strings.EqualFold(s, string(t)) {
			return t, true
		}
	}
	return "", false
}

// Colors offered by the add form. Free text is also accepted.
var Colors = []string{"White", "Black", "Blue", "Red", "Green", "Burgundy", "Teal", "Other"}

// Order is one requested item for one booth
type Order struct {
	Booth           string      `json:"booth"`
	Section         string      `json:"section"`
	Exhibitor       string      `json:"exhibitor"`
	Item            string      `json:"item"`
	Color           string      `json:"color"`
	Quantity        int         `json:"quantity"`
	Date            string      `json:"date"`
	Hour            string      `json:"hour"`
	Status          OrderStatus `json:"status"`
	Type            OrderType   `json:"type"`
	BoomersQuantity int         `json:"boomersQuantity"`
	Comments        string      `json:"comments"`
	User            string      `json:"user"`
}

// Record renders the order as column name to cell value
func (o Order) Record() map[string]string {
	return map[string]string{
		ColBooth:           o.Booth,
		ColSection:         o.Section,
		ColExhibitor:       o.Exhibitor,
		ColItem:            o.Item,
		ColColor:           o.Color,
		ColQuantity:        strconv.Itoa(o.Quantity),
		ColDate:            o.Date,
		ColHour:            o.Hour,
		ColStatus:          string(o.Status),
		ColType:            string(o.Type),
		ColBoomersQuantity: strconv.Itoa(o.BoomersQuantity),
		ColComments:        o.Comments,
		ColUser:            o.User,
	}
}

// OrderFromRecord builds an order from a column name to cell value map.
// Unparseable quantities are left at zero.
func OrderFromRecord(r map[string]string) Order {
	qty, _ := strconv.Atoi(strings.TrimSpace(r[ColQuantity]))
	boomers, _ := strconv.Atoi(strings.TrimSpace(r[ColBoomersQuantity]))
	return Order{
		Booth:           r[ColBooth],
		Section:         r[ColSection],
		Exhibitor:       r[ColExhibitor],
		Item:            r[ColItem],
		Color:           r[ColColor],
		Quantity:        qty,
		Date:            r[ColDate],
		Hour:            r[ColHour],
		Status:          OrderStatus(r[ColStatus]),
		Type:            OrderType(strings.TrimSpace(r[ColType])),
		BoomersQuantity: boomers,
		Comments:        r[ColComments],
		User:            r[ColUser],
	}
}

// IsSectionWorksheet reports whether a worksheet holds one show section
func IsSectionWorksheet(name string) bool {
	return strings.HasPrefix(name, SectionPrefix)
}
