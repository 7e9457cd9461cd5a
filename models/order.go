package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"    // Order placed, not started yet
	OrderStatusInProgress OrderStatus = "InProgress" // Being prepared
	OrderStatusCompleted  OrderStatus = "Completed"  // Fulfilled
)

// Order is the header row. NumberOfProducts and FinalPrice are always the
// aggregates of the current order lines; the transaction service rewrites
// them together with the lines.
type Order struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber      string         `gorm:"uniqueIndex;not null" json:"orderNumber"`
	Date             time.Time      `gorm:"not null" json:"date"`
	NumberOfProducts int            `gorm:"not null;default:0" json:"numberOfProducts"`
	FinalPrice       Money          `gorm:"type:decimal(10,2);not null" json:"finalPrice"`
	Status           OrderStatus    `gorm:"type:varchar(50);not null;default:'Pending'" json:"status"`
	Products         []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"productsData,omitempty"`
}

// OrderProduct is one product/quantity line within an order. A product may
// appear at most once per order.
type OrderProduct struct {
	OrderID   uint `gorm:"primaryKey;autoIncrement:false" json:"-"`
	ProductID uint `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
}
