package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/jobportal/internal/app/models"
)

func newTestJWTService(accessExp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 7, Email: "asha@school.edu", RoleType: models.RoleStudent}

	access, refresh, expiresIn, refreshExpiresIn, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
	assert.Equal(t, int((24 * time.Hour).Seconds()), refreshExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "asha@school.edu", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.RoleType)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)
	user := &models.User{ID: 1, Email: "a@b.co", RoleType: models.RoleAdmin}

	access, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	user := &models.User{ID: 1, Email: "a@b.co", RoleType: models.RoleAdmin}

	access, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "different", AccessTokenExp: time.Hour})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateAndExtractClaimsEmptyToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	_, err := svc.ValidateAndExtractClaims("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
