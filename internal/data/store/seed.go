package store

import (
	"equipment-booking/internal/data/entity"
)

// DefaultCatalog is the stock every fresh deployment starts with. Seeding is
// idempotent by name, so redeploys never duplicate or reset rows.
var DefaultCatalog = []entity.Equipment{
	{Name: "Projector", Category: "av", TotalQuantity: 2, Condition: "good"},
	{Name: "Microphone", Category: "audio", TotalQuantity: 3, Condition: "good"},
	{Name: "Bluetooth Speaker", Category: "audio", TotalQuantity: 2, Condition: "good"},
	{Name: "Laptop", Category: "computing", TotalQuantity: 2, Condition: "good"},
	{Name: "HDMI Cable", Category: "cables", TotalQuantity: 5, Condition: "good"},
	{Name: "Extension Cord", Category: "cables", TotalQuantity: 4, Condition: "good"},
	{Name: "DSLR Camera", Category: "photo", TotalQuantity: 1, Condition: "good"},
	{Name: "Tripod", Category: "photo", TotalQuantity: 2, Condition: "good"},
}
