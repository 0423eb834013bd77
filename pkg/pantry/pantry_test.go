package pantry

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"remote-pantry/entities"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database named after the test so
// parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.Location{}, &entities.Barcode{}, &entities.Foodstuff{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func seedUser(t *testing.T, db *gorm.DB) *entities.User {
	t.Helper()
	u := &entities.User{
		Username:       "nora",
		Email:          "nora@example.com",
		Password:       "x",
		FirstName:      "Nora",
		LastName:       "Test",
		TimezoneOffset: -8,
		IsActive:       true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedLocation(t *testing.T, db *gorm.DB, userID uint, name string) *entities.Location {
	t.Helper()
	loc := &entities.Location{UserID: userID, Name: name}
	if err := db.Create(loc).Error; err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	return loc
}

type foodOpt func(*entities.Foodstuff)

func withExp(days int) foodOpt {
	return func(f *entities.Foodstuff) { f.ExpiresAfterDays = &days }
}

func withFlags(inPantry, onList bool) foodOpt {
	return func(f *entities.Foodstuff) {
		f.InPantry = inPantry
		f.OnShoppingList = onList
	}
}

func withLastPurchased(at time.Time) foodOpt {
	return func(f *entities.Foodstuff) { f.LastPurchased = at }
}

func withLocation(id uint) foodOpt {
	return func(f *entities.Foodstuff) { f.LocationID = &id }
}

func seedFoodstuff(t *testing.T, db *gorm.DB, userID uint, name string, opts ...foodOpt) *entities.Foodstuff {
	t.Helper()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &entities.Foodstuff{
		UserID:        userID,
		Name:          name,
		InPantry:      true,
		LastPurchased: now,
		FirstAdded:    now,
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("failed to seed foodstuff: %v", err)
	}
	return f
}

func reload(t *testing.T, db *gorm.DB, id uint) *entities.Foodstuff {
	t.Helper()
	var f entities.Foodstuff
	if err := db.First(&f, id).Error; err != nil {
		t.Fatalf("failed to reload foodstuff %d: %v", id, err)
	}
	return &f
}
