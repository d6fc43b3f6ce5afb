package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		allowed []OrderStatus
		want    OrderStatus
		ok      bool
	}{
		{"Delivered", EditableStatuses, StatusDelivered, true},
		{"cancelled", EditableStatuses, StatusCancelled, true},
		{"  in process ", EditableStatuses, StatusInProcess, true},
		{"Out for delivery", EditableStatuses, "", false},
		{"Out for delivery", FormStatuses, StatusOutForDelivery, true},
		{"", FormStatuses, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in, tt.allowed)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrderTypeTrims(t *testing.T) {
	got, ok := ParseOrderType("Missing Item ")
	assert.True(t, ok)
	assert.Equal(t, TypeMissingItem, got)

	_, ok = ParseOrderType("Refund")
	assert.False(t, ok)
}

func TestOrderFromRecordLeavesBadQuantityAtZero(t *testing.T) {
	o := OrderFromRecord(map[string]string{
		ColBooth:    "101",
		ColQuantity: "two",
		ColType:     "Remove ",
	})
	assert.Equal(t, "101", o.Booth)
	assert.Equal(t, 0, o.Quantity)
	assert.Equal(t, TypeRemove, o.Type)
}

func TestIsSectionWorksheet(t *testing.T) {
	assert.True(t, IsSectionWorksheet("Section A"))
	assert.False(t, IsSectionWorksheet("Orders"))
	assert.False(t, IsSectionWorksheet(NoSectionWorksheet))
}
