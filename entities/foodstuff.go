package entities

import "time"

type Foodstuff struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint   `gorm:"index;not null" json:"user_id"`
	LocationID *uint  `json:"location_id,omitempty"`
	Name       string `gorm:"size:50;not null" json:"name"`
	// The two flags are independent: an item can be in the pantry and on the
	// shopping list at the same time, or neither.
	InPantry       bool      `gorm:"default:true;not null" json:"in_pantry"`
	OnShoppingList bool      `gorm:"default:false;not null" json:"on_shopping_list"`
	LastPurchased  time.Time `gorm:"not null" json:"last_purchased"`
	FirstAdded     time.Time `gorm:"not null" json:"first_added"`
	// Shelf life in days counted from LastPurchased. Nil means the item is
	// never considered expiring.
	ExpiresAfterDays *int   `json:"expires_after_days,omitempty"`
	Description      string `gorm:"size:300" json:"description,omitempty"`
	BarcodeID        *uint  `json:"barcode_id,omitempty"`

	User     *User     `gorm:"foreignKey:UserID"`
	Location *Location `gorm:"foreignKey:LocationID"`
	Barcode  *Barcode  `gorm:"foreignKey:BarcodeID"`
	Timestamp
}
