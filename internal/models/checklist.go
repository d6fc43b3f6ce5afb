package models

// Checklist columns, one worksheet per section
const (
	ColCLBooth        = "Booth #"
	ColCLSection      = "Section"
	ColCLExhibitor    = "Exhibitor Name"
	ColCLItemName     = "Item Name"
	ColCLStatus       = "Status"
	ColCLQuantity     = "Quantity"
	ColCLInstructions = "Special Instructions"
	ColCLDate         = "Date"
	ColCLHour         = "Hour"
)

// Date and hour layouts written by a checklist toggle
const (
	ChecklistDateLayout = "01-02-06"
	ChecklistHourLayout = "15:04:05"
)

// ChecklistItem is one item a booth must receive
type ChecklistItem struct {
	Worksheet           string `json:"worksheet"`
	Booth               string `json:"booth"`
	Section             string `json:"section"`
	Exhibitor           string `json:"exhibitor"`
	ItemName            string `json:"itemName"`
	Checked             bool   `json:"checked"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
	Date                string `json:"date"`
	Hour                string `json:"hour"`
}
