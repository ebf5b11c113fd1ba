package models

import "github.com/shopspring/decimal"

// Delivery methods accepted on order submissions
const (
	DeliveryPickup   = "pickup"
	DeliveryShipping = "shipping"
)

// Item kinds after normalization
const (
	KindBook      = "book"
	KindAccessory = "accessory"
)

// OrderLine is a single cart entry that survived normalization.
// Raw submissions arrive as untyped JSON and are converted line by line;
// anything that fails normalization is dropped rather than defaulted.
type OrderLine struct {
	ID       string
	Title    string
	Quantity int
	Price    decimal.Decimal
	Image    string
	Kind     string
	IsGift   bool
	ParentID string // cart id of the book bundle a gift line is tied to; empty otherwise
}
