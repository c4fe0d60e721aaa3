package catalog

import (
	"context"

	"quickfind/internal/domain"
)

// Store provides the items the search endpoint scans
type Store interface {
	Items(ctx context.Context) ([]domain.Item, error)
	Mode() string
}

// MemoryStore serves a fixed in-memory item table
type MemoryStore struct {
	items []domain.Item
}

// NewMemoryStore creates a store over items; nil means the sample catalog
func NewMemoryStore(items []domain.Item) *MemoryStore {
	if items == nil {
		items = SampleItems()
	}
	return &MemoryStore{items: items}
}

// Items returns the table in dataset order. Callers must not modify it.
func (s *MemoryStore) Items(ctx context.Context) ([]domain.Item, error) {
	return s.items, nil
}

// Mode names the backing storage
func (s *MemoryStore) Mode() string { return "memory" }

// SampleItems returns a copy of the demo catalog
func SampleItems() []domain.Item {
	out := make([]domain.Item, len(sampleItems))
	copy(out, sampleItems)
	return out
}

var sampleItems = []domain.Item{
	{ID: 1, Title: "Apple MacBook Pro", Description: `Laptop 14" M1/M2`},
	{ID: 2, Title: "Asus ZenBook", Description: "Lightweight laptop"},
	{ID: 3, Title: "Apple iPhone 14", Description: "Phone with great camera"},
	{ID: 4, Title: "Samsung Galaxy S21", Description: "Android flagship"},
	{ID: 5, Title: "Sony WH-1000XM4", Description: "Noise-cancelling headphones"},
	{ID: 6, Title: "Dell XPS 13", Description: "Compact developer laptop"},
	{ID: 7, Title: "Nintendo Switch", Description: "Portable gaming console"},
	{ID: 8, Title: "GoPro Hero", Description: "Action camera"},
	{ID: 9, Title: "Canon EOS R6", Description: "Mirrorless camera"},
	{ID: 10, Title: "Bose QC35", Description: "Comfortable headphones"},
	{ID: 11, Title: `LG OLED TV 55"`, Description: "4K Smart TV"},
	{ID: 12, Title: `Samsung QLED 65"`, Description: "Smart TV with HDR"},
	{ID: 13, Title: "Dyson V11 Vacuum", Description: "Cordless vacuum cleaner"},
	{ID: 14, Title: "iRobot Roomba 960", Description: "Robot vacuum"},
	{ID: 15, Title: "Instant Pot Duo", Description: "Electric pressure cooker"},
	{ID: 16, Title: "Philips Airfryer XXL", Description: "Oil-less fryer"},
	{ID: 17, Title: "Nespresso Vertuo", Description: "Coffee machine"},
	{ID: 18, Title: "Breville Barista Express", Description: "Espresso machine"},
	{ID: 19, Title: `Sony Bravia 43"`, Description: "Full HD TV"},
	{ID: 20, Title: "Panasonic Lumix G85", Description: "Mirrorless camera kit"},
	{ID: 21, Title: "Samsung Galaxy Tab S7", Description: "Android tablet"},
	{ID: 22, Title: "Apple iPad Air", Description: "Tablet with M1 chip"},
	{ID: 23, Title: "Fitbit Charge 5", Description: "Fitness tracker"},
	{ID: 24, Title: "Garmin Forerunner 245", Description: "Running watch"},
	{ID: 25, Title: "Anker Soundcore 2", Description: "Portable Bluetooth speaker"},
	{ID: 26, Title: "JBL Flip 6", Description: "Waterproof Bluetooth speaker"},
	{ID: 27, Title: "Microsoft Surface Laptop 5", Description: "Windows ultrabook"},
	{ID: 28, Title: "HP Spectre x360", Description: "Convertible laptop"},
	{ID: 29, Title: "KitchenAid Stand Mixer", Description: "Mixer with attachments"},
	{ID: 30, Title: "Cuisinart Food Processor", Description: "Multifunctional kitchen device"},
	{ID: 31, Title: "Samsung Galaxy Buds2", Description: "Wireless earbuds"},
	{ID: 32, Title: "Apple AirPods Pro", Description: "Noise-cancelling earbuds"},
	{ID: 33, Title: "Sony PlayStation 5", Description: "Next-gen gaming console"},
	{ID: 34, Title: "Xbox Series X", Description: "Powerful gaming console"},
	{ID: 35, Title: "LG Refrigerator 300L", Description: "Energy-efficient fridge"},
	{ID: 36, Title: "Bosch Washing Machine 8kg", Description: "Front load washing machine"},
	{ID: 37, Title: "Dyson Supersonic", Description: "Hair dryer"},
	{ID: 38, Title: "Canon PIXMA TS8320", Description: "All-in-one printer"},
	{ID: 39, Title: "Ecovacs Deebot T10", Description: "Robot vacuum cleaner"},
	{ID: 40, Title: "Samsung Galaxy Watch 6", Description: "Smartwatch with GPS"},
}
