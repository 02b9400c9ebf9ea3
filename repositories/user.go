package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/burnboard/database"
	"github.com/burnboard/models"
)

// UserRepository handles database operations for user accounts
type UserRepository struct{}

// NewUserRepository creates a new user repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(id string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.User{}, models.ErrNotFound
	}
	return user, result.Error
}

// FindByEmail retrieves a user by email address
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	result := database.DB.First(&user, "email = ?", email)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return models.User{}, models.ErrNotFound
	}
	return user, result.Error
}

// Create inserts a new user into the database
func (r *UserRepository) Create(user models.User) (models.User, error) {
	result := database.DB.Create(&user)
	return user, result.Error
}

// UpdateFields overwrites only the given columns on a user record.
func (r *UserRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := database.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	return result.Error
}
