package pantry

import (
	"context"
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"remote-pantry/domain"
	"remote-pantry/entities"
	"remote-pantry/pkg/location"

	"gorm.io/gorm"
)

type (
	PantryService interface {
		AddFoodstuff(ctx context.Context, req domain.AddFoodstuffRequest, userID uint) (domain.FoodstuffResponse, error)
		GetFoodstuffByID(ctx context.Context, id, userID uint, offsetHours int) (domain.FoodstuffResponse, error)
		UpdateFoodstuff(ctx context.Context, id uint, req domain.UpdateFoodstuffRequest, userID uint) error

		GetPantry(ctx context.Context, userID uint) ([]domain.PantryLocationResponse, error)
		GetExpiringItems(ctx context.Context, userID uint, offsetHours int) ([]domain.ExpiringItemResponse, error)
		GetShoppingList(ctx context.Context, userID uint, offsetHours int) ([]domain.FoodstuffResponse, error)
		GetHistory(ctx context.Context, userID uint, offsetHours int) ([]domain.FoodstuffResponse, error)

		MarkOutOfStock(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error)
		MarkForShopping(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error)
		ReturnToPantry(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error)
		RemoveFromShopping(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error)
		Refill(ctx context.Context, userID uint, refillIDs []uint, expOverrides []string, allIDs []uint) (domain.BatchResult, error)
	}

	pantryService struct {
		pantryRepository   PantryRepository
		locationRepository location.LocationRepository
		clock              Clock
	}
)

func NewPantryService(pantryRepository PantryRepository, locationRepository location.LocationRepository, clock Clock) PantryService {
	return &pantryService{
		pantryRepository:   pantryRepository,
		locationRepository: locationRepository,
		clock:              clock,
	}
}

const displayDateLayout = "Jan 02, 2006"

// parseExpiration turns a form value into an optional shelf life. Empty means
// no expiration tracking; anything else must be a non-negative integer.
func parseExpiration(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return nil, domain.ErrMalformedExpiration
	}
	return &days, nil
}

func (s *pantryService) toResponse(foodstuff *entities.Foodstuff, offsetHours int) domain.FoodstuffResponse {
	return domain.FoodstuffResponse{
		ID:               foodstuff.ID,
		Name:             foodstuff.Name,
		LocationID:       foodstuff.LocationID,
		InPantry:         foodstuff.InPantry,
		OnShoppingList:   foodstuff.OnShoppingList,
		LastPurchased:    foodstuff.LastPurchased,
		LastPurchasedFmt: ToLocal(foodstuff.LastPurchased, offsetHours).Format(displayDateLayout),
		FirstAdded:       foodstuff.FirstAdded,
		ExpiresAfterDays: foodstuff.ExpiresAfterDays,
		Description:      foodstuff.Description,
		BarcodeID:        foodstuff.BarcodeID,
	}
}

func (s *pantryService) AddFoodstuff(ctx context.Context, req domain.AddFoodstuffRequest, userID uint) (domain.FoodstuffResponse, error) {
	exp, err := parseExpiration(req.ExpiresAfterDays)
	if err != nil {
		return domain.FoodstuffResponse{}, err
	}

	now := s.clock.Now()
	foodstuff := &entities.Foodstuff{
		UserID:           userID,
		LocationID:       req.LocationID,
		Name:             req.Name,
		InPantry:         req.InPantry,
		OnShoppingList:   req.OnShoppingList,
		LastPurchased:    now,
		FirstAdded:       now,
		ExpiresAfterDays: exp,
		Description:      req.Description,
	}

	if err := s.pantryRepository.AddFoodstuff(ctx, foodstuff); err != nil {
		return domain.FoodstuffResponse{}, err
	}
	return s.toResponse(foodstuff, 0), nil
}

func (s *pantryService) GetFoodstuffByID(ctx context.Context, id, userID uint, offsetHours int) (domain.FoodstuffResponse, error) {
	foodstuff, err := s.pantryRepository.GetFoodstuffByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodstuffResponse{}, domain.ErrItemNotFound
		}
		return domain.FoodstuffResponse{}, err
	}
	if foodstuff.UserID != userID {
		return domain.FoodstuffResponse{}, domain.ErrUserNotAllowed
	}
	return s.toResponse(foodstuff, offsetHours), nil
}

func (s *pantryService) UpdateFoodstuff(ctx context.Context, id uint, req domain.UpdateFoodstuffRequest, userID uint) error {
	foodstuff, err := s.pantryRepository.GetFoodstuffByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrItemNotFound
		}
		return err
	}
	if foodstuff.UserID != userID {
		return domain.ErrUserNotAllowed
	}

	if req.Name != "" {
		foodstuff.Name = req.Name
	}
	if req.LocationID != nil {
		foodstuff.LocationID = req.LocationID
	}
	if req.ExpiresAfterDays != "" {
		exp, err := parseExpiration(req.ExpiresAfterDays)
		if err != nil {
			return err
		}
		foodstuff.ExpiresAfterDays = exp
	}
	if req.Description != "" {
		foodstuff.Description = req.Description
	}
	if req.LastPurchased != "" {
		parsed, err := time.Parse("2006-01-02", req.LastPurchased)
		if err != nil {
			return domain.ErrInvalidPurchaseDate
		}
		// Pin to noon UTC so the calendar date holds under offset conversion.
		foodstuff.LastPurchased = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, time.UTC)
	}
	if req.InPantry != nil {
		foodstuff.InPantry = *req.InPantry
	}
	if req.OnShoppingList != nil {
		foodstuff.OnShoppingList = *req.OnShoppingList
	}

	return s.pantryRepository.UpdateFoodstuff(ctx, foodstuff)
}

// GetPantry groups a user's in-pantry items by storage location, locations
// ordered by name and items by name. Locations without matching items are
// kept with an empty list.
func (s *pantryService) GetPantry(ctx context.Context, userID uint) ([]domain.PantryLocationResponse, error) {
	locations, err := s.locationRepository.GetLocationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	pantry := make([]domain.PantryLocationResponse, 0, len(locations))
	for _, loc := range locations {
		foodstuffs, err := s.pantryRepository.GetPantryItems(ctx, userID, loc.ID)
		if err != nil {
			return nil, err
		}
		entries := make([]domain.PantryEntryResponse, 0, len(foodstuffs))
		for _, foodstuff := range foodstuffs {
			entries = append(entries, domain.PantryEntryResponse{
				Name:   foodstuff.Name,
				ItemID: foodstuff.ID,
			})
		}
		pantry = append(pantry, domain.PantryLocationResponse{
			LocationID:   loc.ID,
			LocationName: loc.Name,
			Items:        entries,
		})
	}
	return pantry, nil
}

// GetExpiringItems reports days remaining per tracked item, soonest first.
// The expiration instant is last purchase plus shelf life, shifted by the
// caller's display offset; days remaining floors toward minus infinity, so
// already-expired items come out negative rather than erroring.
func (s *pantryService) GetExpiringItems(ctx context.Context, userID uint, offsetHours int) ([]domain.ExpiringItemResponse, error) {
	foodstuffs, err := s.pantryRepository.GetExpiringItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	expiring := make([]domain.ExpiringItemResponse, 0, len(foodstuffs))
	for _, foodstuff := range foodstuffs {
		shelfLife := time.Duration(*foodstuff.ExpiresAfterDays) * 24 * time.Hour
		expiration := ToLocal(foodstuff.LastPurchased.Add(shelfLife), offsetHours)
		daysRemaining := int(math.Floor(expiration.Sub(now).Hours() / 24))

		locationName := ""
		if foodstuff.Location != nil {
			locationName = foodstuff.Location.Name
		}
		expiring = append(expiring, domain.ExpiringItemResponse{
			ItemID:        foodstuff.ID,
			Name:          foodstuff.Name,
			LocationName:  locationName,
			DaysRemaining: daysRemaining,
		})
	}

	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysRemaining < expiring[j].DaysRemaining
	})
	return expiring, nil
}

func (s *pantryService) GetShoppingList(ctx context.Context, userID uint, offsetHours int) ([]domain.FoodstuffResponse, error) {
	foodstuffs, err := s.pantryRepository.GetShoppingList(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := make([]domain.FoodstuffResponse, 0, len(foodstuffs))
	for _, foodstuff := range foodstuffs {
		response = append(response, s.toResponse(foodstuff, offsetHours))
	}
	return response, nil
}

func (s *pantryService) GetHistory(ctx context.Context, userID uint, offsetHours int) ([]domain.FoodstuffResponse, error) {
	foodstuffs, err := s.pantryRepository.GetHistory(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := make([]domain.FoodstuffResponse, 0, len(foodstuffs))
	for _, foodstuff := range foodstuffs {
		response = append(response, s.toResponse(foodstuff, offsetHours))
	}
	return response, nil
}

// applyFlagBatch loads every id, applies mutate, and commits the survivors in
// one transaction. Unknown ids and items owned by someone else are reported
// and skipped, they never abort the rest of the batch.
func (s *pantryService) applyFlagBatch(ctx context.Context, userID uint, ids []uint, mutate func(*entities.Foodstuff)) (domain.BatchResult, error) {
	var result domain.BatchResult
	updates := make([]*entities.Foodstuff, 0, len(ids))
	for _, id := range ids {
		foodstuff, err := s.pantryRepository.GetFoodstuffByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Failures = append(result.Failures, domain.BatchFailure{ItemID: id, Reason: domain.FailureNotFound})
				continue
			}
			return domain.BatchResult{}, err
		}
		if foodstuff.UserID != userID {
			result.Failures = append(result.Failures, domain.BatchFailure{ItemID: id, Reason: domain.FailureNotFound})
			continue
		}
		mutate(foodstuff)
		updates = append(updates, foodstuff)
	}

	if err := s.pantryRepository.UpdateFoodstuffBatch(ctx, updates); err != nil {
		return domain.BatchResult{}, err
	}
	result.Updated = len(updates)
	return result, nil
}

func (s *pantryService) MarkOutOfStock(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error) {
	return s.applyFlagBatch(ctx, userID, ids, func(foodstuff *entities.Foodstuff) {
		foodstuff.InPantry = false
	})
}

func (s *pantryService) MarkForShopping(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error) {
	return s.applyFlagBatch(ctx, userID, ids, func(foodstuff *entities.Foodstuff) {
		foodstuff.OnShoppingList = true
	})
}

func (s *pantryService) ReturnToPantry(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error) {
	return s.applyFlagBatch(ctx, userID, ids, func(foodstuff *entities.Foodstuff) {
		foodstuff.InPantry = true
	})
}

func (s *pantryService) RemoveFromShopping(ctx context.Context, userID uint, ids []uint) (domain.BatchResult, error) {
	return s.applyFlagBatch(ctx, userID, ids, func(foodstuff *entities.Foodstuff) {
		foodstuff.OnShoppingList = false
	})
}

// expOverride is the structural form of one page row. The positional
// expOverrides/allIDs pair from the form is zipped into these records once at
// the boundary and never consulted by index again.
type expOverride struct {
	days      *int
	malformed bool
}

// Refill restocks checked-off shopping list items: back in the pantry, off
// the list, purchase time stamped to now. Each page row may carry an
// expiration override; an empty override keeps the stored shelf life. Only
// ids in refillIDs are written, rows shown on the page but left unchecked
// are untouched no matter what their override inputs say.
func (s *pantryService) Refill(ctx context.Context, userID uint, refillIDs []uint, expOverrides []string, allIDs []uint) (domain.BatchResult, error) {
	if len(expOverrides) != len(allIDs) {
		return domain.BatchResult{}, domain.ErrListLengthMismatch
	}

	overrides := make(map[uint]expOverride, len(allIDs))
	for i, id := range allIDs {
		days, err := parseExpiration(expOverrides[i])
		if err != nil {
			overrides[id] = expOverride{malformed: true}
			continue
		}
		overrides[id] = expOverride{days: days}
	}

	var result domain.BatchResult
	now := s.clock.Now()
	updates := make([]*entities.Foodstuff, 0, len(refillIDs))
	for _, id := range refillIDs {
		foodstuff, err := s.pantryRepository.GetFoodstuffByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Failures = append(result.Failures, domain.BatchFailure{ItemID: id, Reason: domain.FailureNotFound})
				continue
			}
			return domain.BatchResult{}, err
		}
		if foodstuff.UserID != userID {
			result.Failures = append(result.Failures, domain.BatchFailure{ItemID: id, Reason: domain.FailureNotFound})
			continue
		}

		// A malformed override is reported but the restock still goes
		// through with the stored shelf life, same as an empty override.
		override := overrides[id]
		if override.malformed {
			result.Failures = append(result.Failures, domain.BatchFailure{ItemID: id, Reason: domain.FailureMalformedExpiration})
		}

		foodstuff.InPantry = true
		foodstuff.OnShoppingList = false
		foodstuff.LastPurchased = now
		if override.days != nil {
			foodstuff.ExpiresAfterDays = override.days
		}
		updates = append(updates, foodstuff)
	}

	if err := s.pantryRepository.UpdateFoodstuffBatch(ctx, updates); err != nil {
		return domain.BatchResult{}, err
	}
	result.Updated = len(updates)
	return result, nil
}
