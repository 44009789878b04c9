package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "spendlog/internal/errors"
	"spendlog/internal/models"
)

// userService handles user-related business logic.
type userService struct {
	db *gorm.DB
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB) UserServicer {
	return &userService{db: db}
}

// CreateUser registers a new user. The default currency, when provided, must
// resolve to an existing currency. The password is stored as a bcrypt hash.
func (s *userService) CreateUser(name, password string, defaultCurrencyID *uint) (*models.User, error) {
	if name == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name and password are required")
	}

	if defaultCurrencyID != nil {
		var currency models.Currency
		if err := s.db.First(&currency, *defaultCurrencyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.WithMessage(apperrors.ErrCurrencyNotFound, "default currency not found")
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Name:              name,
		Password:          string(hashedPassword),
		DefaultCurrencyID: defaultCurrencyID,
	}

	// The unique index on name is the authority on duplicates: of two
	// concurrent registrations with the same name, one insert succeeds and
	// the other fails here.
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// GetAllUsers retrieves all users.
func (s *userService) GetAllUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return users, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// DeleteUser removes a user. Deletion is refused while the user still owns
// records, so record foreign keys never dangle.
func (s *userService) DeleteUser(id string) error {
	user, err := s.GetUserByID(id)
	if err != nil {
		return err
	}

	var recordCount int64
	if err := s.db.Model(&models.Record{}).Where("user_id = ?", id).Count(&recordCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if recordCount > 0 {
		return apperrors.ErrUserHasRecords
	}

	// The user row is removed for good below, so the user's soft-deleted
	// records must go with it or they would keep referencing a vanished user.
	if err := s.db.Unscoped().Where("user_id = ?", id).Delete(&models.Record{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Hard delete so the unique name becomes available again.
	if err := s.db.Unscoped().Delete(user).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Authenticate verifies a name/password pair and returns the matching user.
// Unknown names and wrong passwords are indistinguishable to the caller.
func (s *userService) Authenticate(name, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("name = ?", name).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if !s.VerifyPassword(&user, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// VerifyPassword checks if the provided password matches the stored hash.
func (s *userService) VerifyPassword(user *models.User, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil
}
