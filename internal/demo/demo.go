// Package demo holds sample spreadsheet contents for local runs and tests
package demo

import (
	"github.com/Sguobi-git/Orders-App/internal/models"
	"github.com/Sguobi-git/Orders-App/internal/sheets"
)

// Spreadsheet IDs used when the memory backend runs without configured IDs
const (
	OrdersSheetID    = "demo-orders"
	ChecklistSheetID = "demo-checklists"
)

// Orders are the sample rows of the Orders worksheet
var Orders = [][]string{
	{"101", "Section A", "Blue Marine", "Chair", "White", "4", "03/01/2025", "09:15:00 AM", "Delivered", "New Order", "4", "", "AD"},
	{"101", "Section A", "Blue Marine", "Table", "White", "1", "03/01/2025", "09:20:00 AM", "In Process", "New Order", "1", "", "AD"},
	{"102", "Section A", "Harbor Yachts", "Sign", "Blue", "2", "03/01/2025", "10:05:00 AM", "In route from warehouse", "New Order", "2", "", "JD"},
	{"205", "Section B", "Coastal Gear", "Carpet", "Red", "1", "03/01/2025", "11:40:00 AM", "Received", "Missing Item", "1", "", "JD"},
	{"206", "Section B", "Wave Riders", models.UnlistedItem, "Other", "1", "03/02/2025", "08:30:00 AM", "In Process", "New Order", "1", "Extra power strip", "KE"},
	{"310", "", "Dock Supply", "Lamp", "Black", "3", "03/02/2025", "01:10:00 PM", "Cancelled", "Remove", "3", "", "KE"},
}

// Inventory is the sample Show Inventory worksheet including its header
var Inventory = [][]string{
	{models.ColInvItem, models.ColInvAvailable},
	{"Chair", "120"},
	{"Table", "35"},
	{"Sign", "8"},
	{"Carpet", "1,200"},
	{"Lamp", ""},
}

var checklistHeader = []string{
	models.ColCLBooth, models.ColCLSection, models.ColCLExhibitor, models.ColCLItemName,
	models.ColCLStatus, models.ColCLQuantity, models.ColCLInstructions, models.ColCLDate, models.ColCLHour,
}

// Checklists are the sample checklist worksheets keyed by name, without banner rows
var Checklists = map[string][][]string{
	"Section A": {
		{"101", "Section A", "Blue Marine", "Chair", "TRUE", "4", "", "03-01-25", "09:30:12"},
		{"101", "Section A", "Blue Marine", "Table", "FALSE", "1", "Skirted", "", ""},
		{"102", "Section A", "Harbor Yachts", "Sign", "FALSE", "2", "Hang above counter", "", ""},
	},
	"Section B": {
		{"205", "Section B", "Coastal Gear", "Carpet", "FALSE", "1", "", "", ""},
	},
	models.NoSectionWorksheet: {
		{"310", "", "Dock Supply", "Lamp", "FALSE", "3", "", "", ""},
	},
}

// Seed fills an in-memory backend with the sample worksheets
func Seed(m *sheets.MemoryClient, ordersID, checklistID string) {
	m.Seed(ordersID, models.OrdersWorksheet, withHeader(models.OrderColumns, Orders))
	m.Seed(ordersID, models.InventoryWorksheet, Inventory)

	for _, name := range []string{"Section A", "Section B", models.NoSectionWorksheet} {
		rows := Checklists[name]
		banner := []string{name + " checklist"}
		m.Seed(checklistID, name, append([][]string{banner}, withHeader(checklistHeader, rows)...))
	}
}

func withHeader(header []string, rows [][]string) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, header)
	return append(out, rows...)
}
