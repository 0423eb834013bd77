package entities

type Location struct {
	ID     uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Name   string `gorm:"size:50;not null" json:"name"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
