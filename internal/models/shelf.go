package models

// Shelf is a storage location within an organization. The first shelf ever
// created for an organization is the default one.
type Shelf struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Address        string `json:"address,omitempty"`
	IsDefault      bool   `json:"isDefault"`
	CreatedOn      string `json:"createdOn"`
	LastModifiedOn string `json:"lastModifiedOn"`
}

// ShelfProduct associates a product with a shelf. Its quantity is independent
// of the product's own quantity fields.
type ShelfProduct struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	SKU          string `json:"sku,omitempty"`
	Quantity     int    `json:"quantity"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// ShelfInput is the payload for creating or updating a shelf.
type ShelfInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ShelfProductInput is the payload for placing a product on a shelf.
type ShelfProductInput struct {
	ProductID    string `json:"productId"`
	ProductName  string `json:"productName"`
	SKU          string `json:"sku,omitempty"`
	Quantity     int    `json:"quantity"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}
