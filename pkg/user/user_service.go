package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"remote-pantry/domain"
	"remote-pantry/entities"
	"remote-pantry/internal/utils"
	"remote-pantry/internal/utils/mailing"
	"remote-pantry/pkg/jwt"
	"remote-pantry/pkg/location"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)
		UpdateSettings(ctx context.Context, userID uint, req domain.UpdateSettingsRequest) (domain.UserResponse, error)
		// GetTimezoneOffset is how the request layer obtains the explicit
		// offset every date computation requires.
		GetTimezoneOffset(ctx context.Context, userID uint) (int, error)
	}

	userService struct {
		userRepository  UserRepository
		jwtService      jwt.JWTService
		locationService location.LocationService
		mail            mailing.Sender
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, locationService location.LocationService, mail mailing.Sender) UserService {
	return &userService{
		userRepository:  userRepository,
		jwtService:      jwtService,
		locationService: locationService,
		mail:            mail,
	}
}

// defaultTimezoneOffset reads the configured fallback for registrations
// that omit an offset. Unset or unparsable config means US Pacific.
func defaultTimezoneOffset() int {
	raw := utils.GetConfig("DEFAULT_TZ_OFFSET")
	if raw == "" {
		return -8
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return -8
	}
	return offset
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByUsername(ctx, req.Username); !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			return domain.RegisterResponse{}, err
		}
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	}
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); !errors.Is(err, gorm.ErrRecordNotFound) {
		if err != nil {
			return domain.RegisterResponse{}, err
		}
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	offset := defaultTimezoneOffset()
	if req.TimezoneOffset != nil {
		offset = *req.TimezoneOffset
	}

	user := &entities.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       string(hashed),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		TimezoneOffset: offset,
		IsActive:       true,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	if err := s.locationService.SeedDefaults(ctx, user.ID); err != nil {
		return domain.RegisterResponse{}, err
	}

	// Welcome mail is best-effort, registration succeeds either way.
	if s.mail != nil {
		body := fmt.Sprintf("<p>Hi %s, your pantry is ready. Add your first item to get started.</p>", user.FirstName)
		if err := s.mail.Send(user.Email, "Welcome to Remote Pantry", body); err != nil {
			log.Printf("welcome mail to %s failed: %v", user.Email, err)
		}
	}

	return domain.RegisterResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID, domain.RoleUser)
	return domain.LoginResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		TimezoneOffset: user.TimezoneOffset,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (s *userService) UpdateSettings(ctx context.Context, userID uint, req domain.UpdateSettingsRequest) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.TimezoneOffset != nil {
		user.TimezoneOffset = *req.TimezoneOffset
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		TimezoneOffset: user.TimezoneOffset,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (s *userService) GetTimezoneOffset(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return user.TimezoneOffset, nil
}
