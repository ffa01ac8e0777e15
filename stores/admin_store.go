package stores

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"salondesk-backend/models"
	"salondesk-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAdminValidation = errors.New("admin validation failed")

// AdminStore owns admin persistence. Passwords are hashed here, on the
// write path, so the Admin model stays a plain value and the hash never
// leaves the store as plaintext.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// Create hashes the given plaintext password and inserts the admin.
func (s *AdminStore) Create(admin *models.Admin, password string) error {
	admin.Username = strings.TrimSpace(admin.Username)
	if n := len(admin.Username); n < 3 || n > 50 {
		return fmt.Errorf("%w: username must be 3-50 characters", ErrAdminValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrAdminValidation)
	}
	if admin.Role == "" {
		admin.Role = models.RoleAdmin
	}
	if !models.ValidRole(admin.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrAdminValidation, admin.Role)
	}

	var existing models.Admin
	err := s.db.Where("username = ?", admin.Username).First(&existing).Error
	if err == nil {
		return ErrUsernameExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("checking username uniqueness: %w", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin.Password = hashed

	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	return s.db.Create(admin).Error
}

func (s *AdminStore) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// TouchLastLogin stamps a successful authentication.
func (s *AdminStore) TouchLastLogin(id uuid.UUID) error {
	now := time.Now()
	return s.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login", &now).Error
}
