package pantry

import (
	"context"
	"testing"
	"time"

	"remote-pantry/domain"
	"remote-pantry/entities"
	"remote-pantry/pkg/location"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newService(db *gorm.DB, clock Clock) PantryService {
	return NewPantryService(NewPantryRepository(db), location.NewLocationRepository(db), clock)
}

func TestRefill_EmptyOverrideKeepsStoredExpiration(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	peppercorns := seedFoodstuff(t, db, user.ID, "peppercorns", withExp(10), withFlags(false, true))

	result, err := s.Refill(ctx, user.ID, []uint{peppercorns.ID}, []string{""}, []uint{peppercorns.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	assert.Empty(t, result.Failures)

	got := reload(t, db, peppercorns.ID)
	assert.True(t, got.InPantry)
	assert.False(t, got.OnShoppingList)
	assert.WithinDuration(t, now, got.LastPurchased, time.Second)
	if assert.NotNil(t, got.ExpiresAfterDays) {
		assert.Equal(t, 10, *got.ExpiresAfterDays)
	}
}

func TestRefill_OverrideReplacesExpiration(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	peppercorns := seedFoodstuff(t, db, user.ID, "peppercorns", withExp(10), withFlags(false, true))

	result, err := s.Refill(ctx, user.ID, []uint{peppercorns.ID}, []string{"5"}, []uint{peppercorns.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	got := reload(t, db, peppercorns.ID)
	if assert.NotNil(t, got.ExpiresAfterDays) {
		assert.Equal(t, 5, *got.ExpiresAfterDays)
	}
}

func TestRefill_OnlyCheckedItemsAreWritten(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	peppercorns := seedFoodstuff(t, db, user.ID, "peppercorns", withExp(10), withFlags(false, true))
	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5), withFlags(false, true))
	eggs := seedFoodstuff(t, db, user.ID, "eggs", withExp(4), withFlags(false, true))
	celery := seedFoodstuff(t, db, user.ID, "celery", withExp(3), withFlags(false, true))

	allIDs := []uint{peppercorns.ID, milk.ID, eggs.ID, celery.ID}
	overrides := []string{"", "20", "30", "40"}

	result, err := s.Refill(ctx, user.ID, []uint{peppercorns.ID, milk.ID, eggs.ID}, overrides, allIDs)
	assert.NoError(t, err)
	assert.Equal(t, 3, result.Updated)
	assert.Empty(t, result.Failures)

	assert.Equal(t, 10, *reload(t, db, peppercorns.ID).ExpiresAfterDays)
	assert.Equal(t, 20, *reload(t, db, milk.ID).ExpiresAfterDays)
	assert.Equal(t, 30, *reload(t, db, eggs.ID).ExpiresAfterDays)

	// celery was shown on the page but never checked: nothing about it moves
	gotCelery := reload(t, db, celery.ID)
	assert.Equal(t, 3, *gotCelery.ExpiresAfterDays)
	assert.False(t, gotCelery.InPantry)
	assert.True(t, gotCelery.OnShoppingList)
}

func TestRefill_LengthMismatchWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5), withFlags(false, true))

	_, err := s.Refill(ctx, user.ID, []uint{milk.ID}, []string{"7", "8"}, []uint{milk.ID})
	assert.ErrorIs(t, err, domain.ErrListLengthMismatch)

	got := reload(t, db, milk.ID)
	assert.False(t, got.InPantry)
	assert.True(t, got.OnShoppingList)
	assert.Equal(t, 5, *got.ExpiresAfterDays)
}

func TestRefill_MalformedOverrideKeepsStoredValueAndReports(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5), withFlags(false, true))

	result, err := s.Refill(ctx, user.ID, []uint{milk.ID}, []string{"soon"}, []uint{milk.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, milk.ID, result.Failures[0].ItemID)
		assert.Equal(t, domain.FailureMalformedExpiration, result.Failures[0].Reason)
	}

	// restock still happened, only the override was refused
	got := reload(t, db, milk.ID)
	assert.True(t, got.InPantry)
	assert.False(t, got.OnShoppingList)
	assert.Equal(t, 5, *got.ExpiresAfterDays)
}

func TestRefill_NegativeOverrideIsMalformed(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5), withFlags(false, true))

	result, err := s.Refill(ctx, user.ID, []uint{milk.ID}, []string{"-3"}, []uint{milk.ID})
	assert.NoError(t, err)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, domain.FailureMalformedExpiration, result.Failures[0].Reason)
	}
	assert.Equal(t, 5, *reload(t, db, milk.ID).ExpiresAfterDays)
}

func TestRefill_UnknownIDSkippedAndReported(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5), withFlags(false, true))

	result, err := s.Refill(ctx, user.ID, []uint{9999, milk.ID}, []string{"", ""}, []uint{9999, milk.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, uint(9999), result.Failures[0].ItemID)
		assert.Equal(t, domain.FailureNotFound, result.Failures[0].Reason)
	}
	assert.True(t, reload(t, db, milk.ID).InPantry)
}

func TestMarkOutOfStock_Idempotent(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withFlags(true, true))

	for i := 0; i < 2; i++ {
		result, err := s.MarkOutOfStock(ctx, user.ID, []uint{milk.ID})
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Updated)
	}

	got := reload(t, db, milk.ID)
	assert.False(t, got.InPantry)
	// shopping flag is independent and untouched
	assert.True(t, got.OnShoppingList)
}

func TestMarkForShopping_UnknownIDDoesNotAbortBatch(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withFlags(true, false))

	result, err := s.MarkForShopping(ctx, user.ID, []uint{404, milk.ID})
	assert.NoError(t, err)
	assert.Equal(t, 1, result.Updated)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, uint(404), result.Failures[0].ItemID)
		assert.Equal(t, domain.FailureNotFound, result.Failures[0].Reason)
	}

	got := reload(t, db, milk.ID)
	assert.True(t, got.OnShoppingList)
	assert.True(t, got.InPantry)
}

func TestMarkOutOfStock_ForeignItemReportedAsNotFound(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	other := &entities.User{Username: "rival", Email: "rival@example.com", Password: "x", FirstName: "R", LastName: "T"}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	theirs := seedFoodstuff(t, db, other.ID, "milk", withFlags(true, false))

	result, err := s.MarkOutOfStock(ctx, user.ID, []uint{theirs.ID})
	assert.NoError(t, err)
	assert.Zero(t, result.Updated)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, theirs.ID, result.Failures[0].ItemID)
		assert.Equal(t, domain.FailureNotFound, result.Failures[0].Reason)
	}

	got := reload(t, db, theirs.ID)
	assert.True(t, got.InPantry)
}

func TestReturnToPantryAndRemoveFromShopping(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withFlags(false, true))

	_, err := s.ReturnToPantry(ctx, user.ID, []uint{milk.ID})
	assert.NoError(t, err)
	got := reload(t, db, milk.ID)
	assert.True(t, got.InPantry)
	assert.True(t, got.OnShoppingList)

	_, err = s.RemoveFromShopping(ctx, user.ID, []uint{milk.ID})
	assert.NoError(t, err)
	got = reload(t, db, milk.ID)
	assert.True(t, got.InPantry)
	assert.False(t, got.OnShoppingList)
}

func TestGetExpiringItems_DaysRemainingAndOrder(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	fridge := seedLocation(t, db, user.ID, "Fridge")
	purchased := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// with offset -8: milk lands at -5, bread at 0, rice at 10
	seedFoodstuff(t, db, user.ID, "rice", withExp(20), withLastPurchased(purchased), withLocation(fridge.ID))
	seedFoodstuff(t, db, user.ID, "milk", withExp(5), withLastPurchased(purchased), withLocation(fridge.ID))
	seedFoodstuff(t, db, user.ID, "bread", withExp(10), withLastPurchased(purchased), withLocation(fridge.ID))
	// no expiration tracking, never listed
	seedFoodstuff(t, db, user.ID, "salt", withLocation(fridge.ID))
	// out of the pantry, never listed
	seedFoodstuff(t, db, user.ID, "yogurt", withExp(2), withLastPurchased(purchased), withFlags(false, false))

	items, err := s.GetExpiringItems(ctx, user.ID, -8)
	assert.NoError(t, err)
	if assert.Len(t, items, 3) {
		assert.Equal(t, "milk", items[0].Name)
		assert.Equal(t, -5, items[0].DaysRemaining)
		assert.Equal(t, "bread", items[1].Name)
		assert.Equal(t, 0, items[1].DaysRemaining)
		assert.Equal(t, "rice", items[2].Name)
		assert.Equal(t, 10, items[2].DaysRemaining)
		assert.Equal(t, "Fridge", items[0].LocationName)
	}
}

func TestGetExpiringItems_OffsetIsExplicit(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	purchased := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedFoodstuff(t, db, user.ID, "bread", withExp(10), withLastPurchased(purchased))

	// same row, different display offsets, different answers
	atPacific, err := s.GetExpiringItems(ctx, user.ID, -8)
	assert.NoError(t, err)
	atUTC, err := s.GetExpiringItems(ctx, user.ID, 0)
	assert.NoError(t, err)

	assert.Equal(t, 0, atPacific[0].DaysRemaining)
	assert.Equal(t, 1, atUTC[0].DaysRemaining)
}

func TestGetExpiringItems_StableOnTies(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	purchased := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedFoodstuff(t, db, user.ID, "zucchini", withExp(10), withLastPurchased(purchased))
	seedFoodstuff(t, db, user.ID, "apples", withExp(10), withLastPurchased(purchased))

	items, err := s.GetExpiringItems(ctx, user.ID, -8)
	assert.NoError(t, err)
	if assert.Len(t, items, 2) {
		// equal days remaining keep insertion order, not name order
		assert.Equal(t, "zucchini", items[0].Name)
		assert.Equal(t, "apples", items[1].Name)
		assert.Equal(t, items[0].DaysRemaining, items[1].DaysRemaining)
	}
}

func TestGetPantry_GroupsAndKeepsEmptyLocations(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	fridge := seedLocation(t, db, user.ID, "Fridge")
	seedLocation(t, db, user.ID, "Freezer")
	cupboard := seedLocation(t, db, user.ID, "Cupboard")

	seedFoodstuff(t, db, user.ID, "milk", withLocation(fridge.ID))
	seedFoodstuff(t, db, user.ID, "butter", withLocation(fridge.ID))
	seedFoodstuff(t, db, user.ID, "rice", withLocation(cupboard.ID))
	// out of stock, not part of the pantry view
	seedFoodstuff(t, db, user.ID, "juice", withLocation(fridge.ID), withFlags(false, true))

	pantry, err := s.GetPantry(ctx, user.ID)
	assert.NoError(t, err)
	if assert.Len(t, pantry, 3) {
		assert.Equal(t, "Cupboard", pantry[0].LocationName)
		assert.Equal(t, "Freezer", pantry[1].LocationName)
		assert.Equal(t, "Fridge", pantry[2].LocationName)

		assert.Len(t, pantry[0].Items, 1)
		// empty location still present
		assert.Empty(t, pantry[1].Items)
		// items sorted by name
		if assert.Len(t, pantry[2].Items, 2) {
			assert.Equal(t, "butter", pantry[2].Items[0].Name)
			assert.Equal(t, "milk", pantry[2].Items[1].Name)
		}
	}
}

func TestGetShoppingListAndHistory(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	seedFoodstuff(t, db, user.ID, "milk", withFlags(false, true), withLastPurchased(older))
	seedFoodstuff(t, db, user.ID, "beans", withFlags(true, true), withLastPurchased(newer))
	seedFoodstuff(t, db, user.ID, "rice", withFlags(true, false))

	list, err := s.GetShoppingList(ctx, user.ID, -8)
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	history, err := s.GetHistory(ctx, user.ID, -8)
	assert.NoError(t, err)
	if assert.Len(t, history, 1) {
		assert.Equal(t, "milk", history[0].Name)
	}
}

func TestAddFoodstuff(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	s := newService(db, fixedClock{now: now})
	ctx := context.Background()

	fridge := seedLocation(t, db, user.ID, "Fridge")
	res, err := s.AddFoodstuff(ctx, domain.AddFoodstuffRequest{
		Name:             "milk",
		LocationID:       &fridge.ID,
		InPantry:         true,
		OnShoppingList:   false,
		ExpiresAfterDays: "7",
	}, user.ID)
	assert.NoError(t, err)
	assert.NotZero(t, res.ID)

	got := reload(t, db, res.ID)
	assert.WithinDuration(t, now, got.LastPurchased, time.Second)
	assert.WithinDuration(t, now, got.FirstAdded, time.Second)
	assert.Equal(t, 7, *got.ExpiresAfterDays)

	_, err = s.AddFoodstuff(ctx, domain.AddFoodstuffRequest{Name: "bad", ExpiresAfterDays: "week"}, user.ID)
	assert.ErrorIs(t, err, domain.ErrMalformedExpiration)
}

func TestUpdateFoodstuff(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	milk := seedFoodstuff(t, db, user.ID, "milk", withExp(5))

	inPantry := false
	err := s.UpdateFoodstuff(ctx, milk.ID, domain.UpdateFoodstuffRequest{
		Name:          "whole milk",
		LastPurchased: "2026-01-15",
		InPantry:      &inPantry,
	}, user.ID)
	assert.NoError(t, err)

	got := reload(t, db, milk.ID)
	assert.Equal(t, "whole milk", got.Name)
	assert.False(t, got.InPantry)
	// date pinned to noon UTC
	assert.WithinDuration(t, time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC), got.LastPurchased, time.Second)
	// untouched fields survive
	assert.Equal(t, 5, *got.ExpiresAfterDays)

	err = s.UpdateFoodstuff(ctx, milk.ID, domain.UpdateFoodstuffRequest{LastPurchased: "yesterday"}, user.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidPurchaseDate)

	err = s.UpdateFoodstuff(ctx, milk.ID, domain.UpdateFoodstuffRequest{Name: "theirs"}, user.ID+1)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	err = s.UpdateFoodstuff(ctx, 12345, domain.UpdateFoodstuffRequest{Name: "ghost"}, user.ID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetFoodstuffByID_DisplayDateUsesOffset(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db)
	s := newService(db, fixedClock{now: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)})
	ctx := context.Background()

	// 03:00 UTC on Mar 1 is still Feb 28 at offset -8
	purchased := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	milk := seedFoodstuff(t, db, user.ID, "milk", withLastPurchased(purchased))

	res, err := s.GetFoodstuffByID(ctx, milk.ID, user.ID, -8)
	assert.NoError(t, err)
	assert.Equal(t, "Feb 28, 2026", res.LastPurchasedFmt)

	res, err = s.GetFoodstuffByID(ctx, milk.ID, user.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, "Mar 01, 2026", res.LastPurchasedFmt)
}
