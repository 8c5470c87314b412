package password

import (
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 12

	// MinLength is the shortest password accepted at registration
	MinLength = 5

	// MaxLength is the bcrypt input limit in bytes
	MaxLength = 72
)

var cost atomic.Int32

func init() {
	cost.Store(DefaultCost)
}

// SetCost changes the bcrypt cost used by Hash. Values outside bcrypt's
// range fall back to DefaultCost.
func SetCost(c int) {
	if c < bcrypt.MinCost || c > bcrypt.MaxCost {
		c = DefaultCost
	}
	cost.Store(int32(c))
}

// Hash hashes a password using bcrypt with a random salt
func Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), int(cost.Load()))
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash. A malformed hash never matches.
func Verify(password, hash string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

var dummy struct {
	sync.Mutex
	cost int
	hash []byte
}

// VerifyDummy does the work of Verify against a throwaway hash at the
// current cost and always returns false. Use it when there is no stored
// hash so a miss costs the same as a wrong password.
func VerifyDummy(password string) bool {
	if hash := dummyHash(); hash != nil {
		_ = bcrypt.CompareHashAndPassword(hash, []byte(password))
	}
	return false
}

func dummyHash() []byte {
	c := int(cost.Load())

	dummy.Lock()
	defer dummy.Unlock()
	if dummy.hash == nil || dummy.cost != c {
		hash, err := bcrypt.GenerateFromPassword([]byte("attendtrack-no-such-user"), c)
		if err != nil {
			return nil
		}
		dummy.hash, dummy.cost = hash, c
	}
	return dummy.hash
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	return len(password) >= MinLength && len(password) <= MaxLength
}
