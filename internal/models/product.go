package models

import (
	"fmt"
	"strings"
)

// StockStatus is the derived stock level of a product.
type StockStatus string

const (
	StatusInStock    StockStatus = "In Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusOutOfStock StockStatus = "Out of Stock"
)

// DefaultLowStockThreshold applies when the backend does not report one.
const DefaultLowStockThreshold = 10

// Product is the dashboard view of a product. It is derived from the backend
// record: sku and status do not exist upstream.
type Product struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Description        string      `json:"description"`
	SKU                string      `json:"sku"`
	Category           string      `json:"category"`
	CategoryID         string      `json:"categoryId"`
	CategoryName       string      `json:"categoryName"`
	TotalQuantity      int         `json:"totalQuantity"`
	AvailableQuantity  int         `json:"availableQuantity"`
	CheckedOutQuantity int         `json:"checkedOutQuantity"`
	LowStockThreshold  int         `json:"lowStockThreshold"`
	Status             StockStatus `json:"status"`
	PhotoURL           string      `json:"photoUrl"`
	CreatedOn          string      `json:"createdOn"`
	LastModifiedOn     string      `json:"lastModifiedOn"`
}

// ProductRecord is the backend representation of a product.
type ProductRecord struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	CategoryID         string `json:"categoryId"`
	CategoryName       string `json:"categoryName"`
	TotalQuantity      int    `json:"totalQuantity"`
	AvailableQuantity  int    `json:"availableQuantity"`
	CheckedOutQuantity int    `json:"checkedOutQuantity"`
	LowStockThreshold  *int   `json:"lowStockThreshold"`
	PhotoURL           string `json:"photoUrl"`
	CreatedOn          string `json:"createdOn"`
	LastModifiedOn     string `json:"lastModifiedOn"`
}

// StatusFor derives the stock status from an available quantity and a
// low-stock threshold.
func StatusFor(available, threshold int) StockStatus {
	switch {
	case available == 0:
		return StatusOutOfStock
	case available <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// SKUFromID derives a display SKU deterministically from the server-assigned
// id: the first eight alphanumeric characters, uppercased.
func SKUFromID(id string) string {
	if id == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range id {
		if r == '-' || r == '_' {
			continue
		}
		b.WriteRune(r)
		if b.Len() >= 8 {
			break
		}
	}
	return fmt.Sprintf("SKU-%s", strings.ToUpper(b.String()))
}

// ProductFromRecord maps a backend record to the dashboard view model.
func ProductFromRecord(r ProductRecord) Product {
	threshold := DefaultLowStockThreshold
	if r.LowStockThreshold != nil {
		threshold = *r.LowStockThreshold
	}
	return Product{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		SKU:                SKUFromID(r.ID),
		Category:           r.CategoryName,
		CategoryID:         r.CategoryID,
		CategoryName:       r.CategoryName,
		TotalQuantity:      r.TotalQuantity,
		AvailableQuantity:  r.AvailableQuantity,
		CheckedOutQuantity: r.CheckedOutQuantity,
		LowStockThreshold:  threshold,
		Status:             StatusFor(r.AvailableQuantity, threshold),
		PhotoURL:           r.PhotoURL,
		CreatedOn:          r.CreatedOn,
		LastModifiedOn:     r.LastModifiedOn,
	}
}

// ProductsFromRecords maps a slice of backend records.
func ProductsFromRecords(records []ProductRecord) []Product {
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, ProductFromRecord(r))
	}
	return products
}

// ProductInput is the payload for creating or updating a product.
type ProductInput struct {
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	CategoryID        string `json:"categoryId,omitempty"`
	TotalQuantity     *int   `json:"totalQuantity,omitempty"`
	LowStockThreshold *int   `json:"lowStockThreshold,omitempty"`
	PhotoURL          string `json:"photoUrl,omitempty"`
}

// QuantityInput is the payload for restock/consume/check-out/check-in.
type QuantityInput struct {
	Quantity int `json:"quantity"`
}
