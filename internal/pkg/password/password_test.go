package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	SetCost(bcrypt.MinCost)
	m.Run()
}

func TestHashAndVerify(t *testing.T) {
	for _, pw := range []string{"pw123", "correct horse battery staple", "ümlaut-pässwörd"} {
		hash, err := Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
		assert.True(t, Verify(pw, hash), "password %q should verify", pw)
		assert.False(t, Verify(pw+"x", hash))
		assert.False(t, Verify("", hash))
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("pw123")
	require.NoError(t, err)
	b, err := Hash("pw123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	assert.False(t, Verify("pw123", ""))
	assert.False(t, Verify("pw123", "not-a-bcrypt-hash"))
	assert.False(t, Verify("pw123", "$2a$10$short"))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("abcd"))
	assert.True(t, ValidatePassword("pw123"))
	assert.False(t, ValidatePassword(string(make([]byte, MaxLength+1))))
}

func TestSetCostOutOfRange(t *testing.T) {
	defer SetCost(bcrypt.MinCost)

	SetCost(100)
	assert.EqualValues(t, DefaultCost, cost.Load())
}

func TestVerifyDummyFollowsCost(t *testing.T) {
	defer SetCost(bcrypt.MinCost)

	assert.False(t, VerifyDummy("pw123"))
	assert.False(t, VerifyDummy(""))

	got, err := bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, got)

	SetCost(bcrypt.MinCost + 1)
	assert.False(t, VerifyDummy("pw123"))
	got, err = bcrypt.Cost(dummyHash())
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, got)
}
