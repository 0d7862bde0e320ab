package utils

import (
	"errors"
	"fmt"

	"github.com/yourusername/acme-invoicing/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CredentialsProviderKey is the fixed provider identifier the login handler
// signs in with.
const CredentialsProviderKey = "credentials"

// AuthErrorKind classifies authentication faults. Anything that is not an
// AuthError (store outage and the like) passes through to the caller untouched.
type AuthErrorKind string

const (
	AuthErrorInvalidCredentials AuthErrorKind = "CredentialsSignin"
	AuthErrorCallback           AuthErrorKind = "CallbackRouteError"
)

type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("auth error (%s)", e.Kind)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// Credentials is the form payload forwarded to a verifier. The login handler
// does not inspect it beyond lifting the two keys out of the form body.
type Credentials struct {
	Email    string
	Password string
}

type CredentialsVerifierInterface interface {
	Verify(creds Credentials) (*models.User, error)
}

// GormCredentialsVerifier checks credentials against the users table.
type GormCredentialsVerifier struct {
	db *gorm.DB
}

func NewGormCredentialsVerifier(db *gorm.DB) CredentialsVerifierInterface {
	return &GormCredentialsVerifier{db: db}
}

func (v *GormCredentialsVerifier) Verify(creds Credentials) (*models.User, error) {
	var user models.User
	err := v.db.Where("email = ?", creds.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &AuthError{Kind: AuthErrorInvalidCredentials, Err: err}
	}
	if err != nil {
		// Store fault, not an authentication outcome.
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, &AuthError{Kind: AuthErrorCallback, Err: errors.New("user account is inactive")}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, &AuthError{Kind: AuthErrorInvalidCredentials, Err: err}
	}

	return &user, nil
}
