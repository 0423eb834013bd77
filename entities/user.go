package entities

type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email     string `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password  string `gorm:"size:150;not null" json:"-"`
	FirstName string `gorm:"size:50;not null" json:"first_name"`
	LastName  string `gorm:"size:50;not null" json:"last_name"`
	// Display offset in hours relative to UTC, chosen at registration.
	TimezoneOffset int  `gorm:"default:-8;not null" json:"timezone_offset"`
	IsActive       bool `gorm:"default:true;not null" json:"is_active"`

	Timestamp
}
