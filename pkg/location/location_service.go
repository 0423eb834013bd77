package location

import (
	"context"
	"errors"

	"remote-pantry/domain"
	"remote-pantry/entities"

	"gorm.io/gorm"
)

// DefaultLocationNames are seeded for every new user at registration.
var DefaultLocationNames = []string{"Fridge", "Freezer", "Cupboard", "Spice Rack"}

type (
	LocationService interface {
		AddLocation(ctx context.Context, req domain.AddLocationRequest, userID uint) (domain.LocationResponse, error)
		GetLocations(ctx context.Context, userID uint) ([]domain.LocationResponse, error)
		RenameLocation(ctx context.Context, id uint, req domain.RenameLocationRequest, userID uint) (domain.LocationResponse, error)
		SeedDefaults(ctx context.Context, userID uint) error
	}

	locationService struct {
		locationRepository LocationRepository
	}
)

func NewLocationService(locationRepository LocationRepository) LocationService {
	return &locationService{locationRepository: locationRepository}
}

func (s *locationService) AddLocation(ctx context.Context, req domain.AddLocationRequest, userID uint) (domain.LocationResponse, error) {
	existing, err := s.locationRepository.GetLocationByName(ctx, userID, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.LocationResponse{}, err
	}
	if existing != nil {
		return domain.LocationResponse{}, domain.ErrLocationExists
	}

	loc := &entities.Location{UserID: userID, Name: req.Name}
	if err := s.locationRepository.AddLocation(ctx, loc); err != nil {
		return domain.LocationResponse{}, err
	}
	return domain.LocationResponse{ID: loc.ID, Name: loc.Name}, nil
}

func (s *locationService) GetLocations(ctx context.Context, userID uint) ([]domain.LocationResponse, error) {
	locations, err := s.locationRepository.GetLocationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	response := make([]domain.LocationResponse, 0, len(locations))
	for _, loc := range locations {
		response = append(response, domain.LocationResponse{ID: loc.ID, Name: loc.Name})
	}
	return response, nil
}

func (s *locationService) RenameLocation(ctx context.Context, id uint, req domain.RenameLocationRequest, userID uint) (domain.LocationResponse, error) {
	loc, err := s.locationRepository.GetLocationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LocationResponse{}, domain.ErrLocationNotFound
		}
		return domain.LocationResponse{}, err
	}
	if loc.UserID != userID {
		return domain.LocationResponse{}, domain.ErrUserNotAllowed
	}

	loc.Name = req.Name
	if err := s.locationRepository.UpdateLocation(ctx, loc); err != nil {
		return domain.LocationResponse{}, err
	}
	return domain.LocationResponse{ID: loc.ID, Name: loc.Name}, nil
}

func (s *locationService) SeedDefaults(ctx context.Context, userID uint) error {
	for _, name := range DefaultLocationNames {
		loc := &entities.Location{UserID: userID, Name: name}
		if err := s.locationRepository.AddLocation(ctx, loc); err != nil {
			return err
		}
	}
	return nil
}
