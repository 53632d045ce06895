package auth

import (
	"os"
	"testing"
	"time"

	"github.com/AtexDEPR/Sistema-CarMotors-sub000/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	service, err := NewService()
	require.NoError(t, err)
	return service
}

func testUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "mrodriguez",
		Role:     models.RoleTechnician,
	}
}

func TestNewService_Defaults(t *testing.T) {
	os.Unsetenv("JWT_EXPIRY")
	service := newTestService(t)
	assert.NotEmpty(t, service.jwtSecret)
	assert.Equal(t, 24*time.Hour, service.tokenExp)
}

func TestHashAndCheckPassword(t *testing.T) {
	service := newTestService(t)

	hash, err := service.HashPassword("taller2024!")
	require.NoError(t, err)
	assert.NotEqual(t, "taller2024!", hash)

	assert.True(t, service.CheckPassword("taller2024!", hash))
	assert.False(t, service.CheckPassword("wrong-password", hash))
	assert.False(t, service.CheckPassword("taller2024!", "not-a-bcrypt-hash"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(t)
	user := testUser()

	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, models.RoleTechnician, claims.Role)
	assert.Greater(t, claims.Exp, time.Now().Unix())
}

func TestValidateToken_BearerPrefix(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := service.ValidateToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "mrodriguez", claims.Username)
}

func TestValidateToken_Garbage(t *testing.T) {
	service := newTestService(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestValidateToken_Tampered(t *testing.T) {
	service := newTestService(t)

	token, err := service.GenerateToken(testUser())
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "XXXX"
	_, err = service.ValidateToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	os.Setenv("JWT_EXPIRY", "-1h")
	defer os.Unsetenv("JWT_EXPIRY")

	service := newTestService(t)
	token, err := service.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	service := newTestService(t)

	claims := tokenClaims{
		UserID:   primitive.NewObjectID().Hex(),
		Username: "outsider",
		Role:     string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "some-other-system",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := foreign.SignedString(service.jwtSecret)
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService(t)

	first, err := service.GenerateRefreshToken()
	require.NoError(t, err)
	second, err := service.GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}

func TestExtractTokenFromHeader(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc123", "abc123", false},
		{"", "", true},
		{"abc123", "", true},
		{"Basic abc123", "", true},
		{"Bearer ", "", true},
	}

	for _, tt := range tests {
		got, err := service.ExtractTokenFromHeader(tt.header)
		if tt.wantErr {
			assert.Error(t, err, "header %q", tt.header)
		} else {
			assert.NoError(t, err, "header %q", tt.header)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	service := newTestService(t)

	assert.Error(t, service.ValidatePassword("short"))
	assert.NoError(t, service.ValidatePassword("long-enough-password"))
}

func TestValidateEmail(t *testing.T) {
	service := newTestService(t)

	assert.NoError(t, service.ValidateEmail("taller@carmotors.co"))
	assert.Error(t, service.ValidateEmail("not-an-email"))
	assert.Error(t, service.ValidateEmail("missing@dot"))
}

func TestValidateUsername(t *testing.T) {
	service := newTestService(t)

	assert.Error(t, service.ValidateUsername("ab"))
	assert.NoError(t, service.ValidateUsername("mrodriguez"))

	long := make([]byte, 51)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, service.ValidateUsername(string(long)))
}
