package store

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quarzen/tradebook/pkg/journal/models"
)

// ============================================
// USER OPERATIONS
// ============================================

func (s *GORMStore) GetUser(ctx context.Context, username string) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "username", username, models.ErrUserNotFound)
}

func (s *GORMStore) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return getByField[models.User](s.db, ctx, "id", id, models.ErrUserNotFound)
}

func (s *GORMStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	return listAll[models.User](s.db, ctx, "username ASC")
}

// CreateUser creates a new account with a bcrypt-hashed password.
// Returns models.ErrDuplicateUser if the username is taken.
func (s *GORMStore) CreateUser(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if password == "" {
		return nil, fmt.Errorf("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.ErrDuplicateUser
		}
		return nil, err
	}

	return user, nil
}

// ValidateCredentials checks a username/password pair and returns the user.
// Returns models.ErrInvalidCredentials for both unknown users and wrong
// passwords so callers cannot distinguish the two.
func (s *GORMStore) ValidateCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

func (s *GORMStore) UpdatePassword(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("password_hash", string(hash))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user together with their trades and mistake tags.
func (s *GORMStore) DeleteUser(ctx context.Context, username string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("username = ?", username).First(&user).Error; err != nil {
			return convertNotFoundError(err, models.ErrUserNotFound)
		}

		var trades []models.Trade
		if err := tx.Where("user_id = ?", user.ID).Find(&trades).Error; err != nil {
			return err
		}
		for i := range trades {
			if err := tx.Model(&trades[i]).Association("Mistakes").Clear(); err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Trade{}).Error; err != nil {
			return err
		}

		return tx.Delete(&user).Error
	})
}

// ============================================
// ADMIN INITIALIZATION
// ============================================

// EnsureAdminUser creates the initial admin account if it does not exist.
//
// When passwordHash is non-empty it is stored as-is (pre-hashed via
// 'tradebook init'). Otherwise a random password is generated and returned
// so the operator can note it down; it is never shown again.
func (s *GORMStore) EnsureAdminUser(ctx context.Context, username, email, passwordHash string) (string, error) {
	if username == "" {
		username = "admin"
	}

	_, err := s.GetUser(ctx, username)
	if err == nil {
		return "", nil // Admin already exists
	}
	if !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}

	if passwordHash != "" {
		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: passwordHash,
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return "", fmt.Errorf("failed to create admin user: %w", err)
		}
		return "", nil
	}

	password, err := generatePassword()
	if err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	if _, err := s.CreateUser(ctx, username, email, password); err != nil {
		return "", fmt.Errorf("failed to create admin user: %w", err)
	}

	return password, nil
}

// generatePassword returns a 16-byte random password, base64url-encoded.
func generatePassword() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (s *GORMStore) UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Update("last_login", timestamp)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
