package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/acme-invoicing/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestGormCredentialsVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	assert.NoError(t, err)

	newDB := func(t *testing.T, active bool) *gorm.DB {
		db := setupTestDB(t)
		db.Create(&models.User{
			Email:        "user@acme.test",
			Name:         "Demo User",
			PasswordHash: string(hash),
			Role:         "user",
			IsActive:     true,
		})
		if !active {
			// The column default is true, so flip it explicitly.
			db.Model(&models.User{}).Where("email = ?", "user@acme.test").Update("is_active", false)
		}
		return db
	}

	t.Run("Correct Password", func(t *testing.T) {
		verifier := NewGormCredentialsVerifier(newDB(t, true))
		user, err := verifier.Verify(Credentials{Email: "user@acme.test", Password: "secret123"})

		assert.NoError(t, err)
		assert.Equal(t, "user@acme.test", user.Email)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		verifier := NewGormCredentialsVerifier(newDB(t, true))
		_, err := verifier.Verify(Credentials{Email: "user@acme.test", Password: "nope"})

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, AuthErrorInvalidCredentials, authErr.Kind)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		verifier := NewGormCredentialsVerifier(newDB(t, true))
		_, err := verifier.Verify(Credentials{Email: "nobody@acme.test", Password: "secret123"})

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, AuthErrorInvalidCredentials, authErr.Kind)
	})

	t.Run("Inactive Account", func(t *testing.T) {
		verifier := NewGormCredentialsVerifier(newDB(t, false))
		_, err := verifier.Verify(Credentials{Email: "user@acme.test", Password: "secret123"})

		var authErr *AuthError
		assert.ErrorAs(t, err, &authErr)
		assert.Equal(t, AuthErrorCallback, authErr.Kind)
	})

	t.Run("Store Fault Is Not An AuthError", func(t *testing.T) {
		db := newDB(t, true)
		db.Migrator().DropTable(&models.User{})

		verifier := NewGormCredentialsVerifier(db)
		_, err := verifier.Verify(Credentials{Email: "user@acme.test", Password: "secret123"})

		assert.Error(t, err)
		var authErr *AuthError
		assert.False(t, errors.As(err, &authErr))
	})
}
