package models

// Product is a catalog row. Qty is stock on hand and is adjusted by the
// order transaction logic whenever orders reserve or release units.
type Product struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	UnitPrice Money  `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Qty       int    `gorm:"not null;default:0" json:"qty"`
}
