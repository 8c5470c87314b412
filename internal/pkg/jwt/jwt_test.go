package jwt

import (
	"testing"
	"time"

	"attendtrack/internal/core/domain"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestIssuer(t *testing.T, clock *fakeClock) *Issuer {
	t.Helper()
	iss, err := NewIssuer("test-secret", "attendtrack-test", 30*time.Minute, WithClock(clock.Now))
	require.NoError(t, err)
	return iss
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer("", "x", time.Minute)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)

	for _, role := range domain.Roles {
		token, exp, err := iss.Issue("S100", role)
		require.NoError(t, err)
		assert.WithinDuration(t, clock.t.Add(30*time.Minute), exp, time.Second)

		claims, err := iss.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "S100", claims.Subject)
		assert.Equal(t, role, claims.Role)
		assert.NotEmpty(t, claims.ID)
	}
}

func TestVerifyRejectsAfterExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)

	token, _, err := iss.IssueWithTTL("S100", domain.RoleStudent, time.Minute)
	require.NoError(t, err)

	clock.t = clock.t.Add(59 * time.Second)
	_, err = iss.Verify(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Second)
	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsForgedToken(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)
	other, err := NewIssuer("another-secret", "attendtrack-test", time.Minute, WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := other.Issue("S100", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = iss.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = iss.Verify(token[:len(token)-2])
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)

	claims := Claims{
		Role: domain.Role("superuser"),
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   "S100",
			Issuer:    "attendtrack-test",
			ExpiresAt: gojwt.NewNumericDate(clock.t.Add(time.Minute)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrUnknownRole)

	_, _, err = iss.Issue("S100", domain.Role("superuser"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestVerifyRejectsNoneAlgAndMissingExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "x", Issuer: "attendtrack-test"},
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Verify(none)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	noExp, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: gojwt.RegisteredClaims{Subject: "x", Issuer: "attendtrack-test"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = iss.Verify(noExp)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	iss := newTestIssuer(t, clock)
	other, err := NewIssuer("test-secret", "someone-else", time.Minute, WithClock(clock.Now))
	require.NoError(t, err)

	token, _, err := other.Issue("S100", domain.RoleStudent)
	require.NoError(t, err)
	_, err = iss.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
