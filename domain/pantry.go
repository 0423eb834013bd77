package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddFoodstuff    = "item added successfully"
	MessageSuccessUpdateFoodstuff = "item updated successfully"
	MessageSuccessGetFoodstuff    = "item retrieved successfully"
	MessageSuccessGetPantry       = "pantry retrieved successfully"
	MessageSuccessGetExpiring     = "expiring items retrieved successfully"
	MessageSuccessGetShoppingList = "shopping list retrieved successfully"
	MessageSuccessGetHistory      = "history retrieved successfully"
	MessageSuccessUpdatePantry    = "pantry updated successfully"
	MessageSuccessRestock         = "shopping list restocked successfully"

	MessageFailedAddFoodstuff    = "failed to add item"
	MessageFailedUpdateFoodstuff = "failed to update item"
	MessageFailedGetFoodstuff    = "failed to retrieve item"
	MessageFailedGetPantry       = "failed to retrieve pantry"
	MessageFailedGetExpiring     = "failed to retrieve expiring items"
	MessageFailedGetShoppingList = "failed to retrieve shopping list"
	MessageFailedGetHistory      = "failed to retrieve history"
	MessageFailedUpdatePantry    = "failed to update pantry"
	MessageFailedRestock         = "failed to restock shopping list"

	ErrItemNotFound        = errors.New("pantry item not found")
	ErrMalformedExpiration = errors.New("expiration must be a non-negative number of days")
	ErrListLengthMismatch  = errors.New("expiration overrides do not line up with item ids")
	ErrInvalidPurchaseDate = errors.New("invalid purchase date")
)

// Failure reasons reported per item in a BatchResult.
const (
	FailureNotFound            = "not found"
	FailureMalformedExpiration = "malformed expiration"
)

type (
	AddFoodstuffRequest struct {
		Name           string `json:"name" validate:"required,max=50"`
		LocationID     *uint  `json:"location_id" validate:"omitempty"`
		InPantry       bool   `json:"in_pantry"`
		OnShoppingList bool   `json:"on_shopping_list"`
		// Optional shelf life in days; empty string means no expiration tracking.
		ExpiresAfterDays string `json:"expires_after_days" validate:"omitempty"`
		Description      string `json:"description" validate:"omitempty,max=300"`
	}

	UpdateFoodstuffRequest struct {
		Name             string `json:"name" validate:"omitempty,max=50"`
		LocationID       *uint  `json:"location_id" validate:"omitempty"`
		ExpiresAfterDays string `json:"expires_after_days" validate:"omitempty"`
		Description      string `json:"description" validate:"omitempty,max=300"`
		// Purchase date as YYYY-MM-DD; stored normalized to noon UTC so the
		// date survives offset conversion on display.
		LastPurchased  string `json:"last_purchased" validate:"omitempty"`
		InPantry       *bool  `json:"in_pantry"`
		OnShoppingList *bool  `json:"on_shopping_list"`
	}

	FoodstuffResponse struct {
		ID               uint      `json:"id"`
		Name             string    `json:"name"`
		LocationID       *uint     `json:"location_id,omitempty"`
		InPantry         bool      `json:"in_pantry"`
		OnShoppingList   bool      `json:"on_shopping_list"`
		LastPurchased    time.Time `json:"last_purchased"`
		LastPurchasedFmt string    `json:"last_purchased_display"`
		FirstAdded       time.Time `json:"first_added"`
		ExpiresAfterDays *int      `json:"expires_after_days,omitempty"`
		Description      string    `json:"description,omitempty"`
		BarcodeID        *uint     `json:"barcode_id,omitempty"`
	}

	// UpdatePantryRequest carries the bulk-action form of the pantry page:
	// items toggled empty and items toggled back onto the shopping list.
	UpdatePantryRequest struct {
		Empty  []uint `json:"empty"`
		Refill []uint `json:"refill"`
	}

	// RestockRequest carries the shopping page form. ExpOverrides and AllIDs
	// are index-aligned: AllIDs lists every item shown on the page and
	// ExpOverrides the expiration input next to each one. RefillIDs is the
	// subset the user actually checked off; Removals are taken off the list
	// without being restocked.
	RestockRequest struct {
		RefillIDs    []uint   `json:"refill"`
		ExpOverrides []string `json:"exp"`
		AllIDs       []uint   `json:"item_ids"`
		Removals     []uint   `json:"delete"`
	}

	// UpdateHistoryRequest: Restock puts emptied items straight back in the
	// pantry, Refill puts them on the shopping list.
	UpdateHistoryRequest struct {
		Restock []uint `json:"restock"`
		Refill  []uint `json:"refill"`
	}

	ExpiringItemResponse struct {
		ItemID        uint   `json:"item_id"`
		Name          string `json:"name"`
		LocationName  string `json:"location_name"`
		DaysRemaining int    `json:"days_remaining"`
	}

	PantryEntryResponse struct {
		Name   string `json:"name"`
		ItemID uint   `json:"item_id"`
	}

	PantryLocationResponse struct {
		LocationID   uint                  `json:"location_id"`
		LocationName string                `json:"location_name"`
		Items        []PantryEntryResponse `json:"items"`
	}

	BatchFailure struct {
		ItemID uint   `json:"item_id"`
		Reason string `json:"reason"`
	}

	// BatchResult reports a batch operation that is allowed to partially
	// succeed: how many rows were written and which ids were skipped.
	BatchResult struct {
		Updated  int            `json:"updated"`
		Failures []BatchFailure `json:"failures,omitempty"`
	}
)
