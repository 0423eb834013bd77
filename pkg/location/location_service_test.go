package location

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"remote-pantry/domain"
	"remote-pantry/entities"

	"github.com/stretchr/testify/assert"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.Location{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}

func newService(t *testing.T) (LocationService, *gorm.DB) {
	db := newTestDB(t)
	return NewLocationService(NewLocationRepository(db)), db
}

func TestAddLocation_RejectsDuplicateNamePerUser(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.AddLocation(ctx, domain.AddLocationRequest{Name: "Cellar"}, 1)
	assert.NoError(t, err)

	_, err = s.AddLocation(ctx, domain.AddLocationRequest{Name: "Cellar"}, 1)
	assert.ErrorIs(t, err, domain.ErrLocationExists)

	// same name for another user is fine
	_, err = s.AddLocation(ctx, domain.AddLocationRequest{Name: "Cellar"}, 2)
	assert.NoError(t, err)

	// match is case-sensitive, "cellar" is a different location
	_, err = s.AddLocation(ctx, domain.AddLocationRequest{Name: "cellar"}, 1)
	assert.NoError(t, err)
}

func TestSeedDefaults(t *testing.T) {
	s, db := newService(t)
	ctx := context.Background()

	assert.NoError(t, s.SeedDefaults(ctx, 7))

	var count int64
	db.Model(&entities.Location{}).Where("user_id = ?", 7).Count(&count)
	assert.Equal(t, int64(len(DefaultLocationNames)), count)

	locations, err := s.GetLocations(ctx, 7)
	assert.NoError(t, err)
	if assert.Len(t, locations, 4) {
		// ordered by name ascending
		assert.Equal(t, "Cupboard", locations[0].Name)
		assert.Equal(t, "Freezer", locations[1].Name)
		assert.Equal(t, "Fridge", locations[2].Name)
		assert.Equal(t, "Spice Rack", locations[3].Name)
	}
}

func TestRenameLocation(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	created, err := s.AddLocation(ctx, domain.AddLocationRequest{Name: "Pantry"}, 1)
	assert.NoError(t, err)

	renamed, err := s.RenameLocation(ctx, created.ID, domain.RenameLocationRequest{Name: "Larder"}, 1)
	assert.NoError(t, err)
	assert.Equal(t, "Larder", renamed.Name)

	_, err = s.RenameLocation(ctx, created.ID, domain.RenameLocationRequest{Name: "Theirs"}, 2)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = s.RenameLocation(ctx, 999, domain.RenameLocationRequest{Name: "Ghost"}, 1)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}
