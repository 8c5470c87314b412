package repositories

import (
	"errors"
	"strings"

	"attendtrack/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// ErrEmailInUse is returned by student and instructor Create when another
// identity already holds the email
var ErrEmailInUse = errors.New("email already in use by another identity")

// IsNotFound reports whether err is gorm's record-not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKey reports whether err is a unique constraint violation.
// gorm translates these when TranslateError is on; the string checks cover
// dialects or wrapped errors the translator misses.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// reserveEmail claims email in identity_emails inside tx
func reserveEmail(tx *gorm.DB, email, owner string) error {
	err := tx.Create(&models.IdentityEmail{Email: email, Owner: owner}).Error
	if IsDuplicateKey(err) {
		return ErrEmailInUse
	}
	return err
}
