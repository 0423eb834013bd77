package entities

// Barcode is referenced by Foodstuff but not consumed by any flow yet.
type Barcode struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FoodType string `gorm:"size:50" json:"food_type,omitempty"`

	Timestamp
}
