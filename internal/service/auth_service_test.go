package service

import (
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nucampus/campus-backend/internal/config"
	"github.com/nucampus/campus-backend/internal/model"
)

func testAuthService(secret string) *AuthService {
	return NewAuthService(&config.Config{
		JWTSecret:  secret,
		JWTExpiry:  time.Hour,
		BcryptCost: bcrypt.MinCost,
	}, nil)
}

func signTestToken(t *testing.T, secret string, role model.Role, expiry time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "test-jti",
			Subject:   strconv.Itoa(7),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
		UserID: 7,
		Email:  "rina@example.com",
		Name:   "Rina",
		Role:   role,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestPasswordHashRoundTrip(t *testing.T) {
	auth := testAuthService("secret")

	hash, err := auth.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := auth.CheckPassword(hash, "hunter22"); err != nil {
		t.Fatalf("CheckPassword with correct password: %v", err)
	}
	if err := auth.CheckPassword(hash, "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("CheckPassword with wrong password = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken(t *testing.T) {
	auth := testAuthService("secret")

	token := signTestToken(t, "secret", model.RoleStudent, time.Hour)
	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "rina@example.com" || claims.Role != model.RoleStudent {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != "test-jti" {
		t.Fatalf("jti = %q, want test-jti", claims.ID)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	auth := testAuthService("secret")
	token := signTestToken(t, "other-secret", model.RoleStudent, time.Hour)
	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	auth := testAuthService("secret")
	token := signTestToken(t, "secret", model.RoleStudent, -time.Minute)
	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestValidateTokenRejectsUnknownRole(t *testing.T) {
	auth := testAuthService("secret")
	token := signTestToken(t, "secret", model.Role("superuser"), time.Hour)
	if _, err := auth.ValidateToken(token); err == nil {
		t.Fatal("token with unknown role validated")
	}
}

func TestClaimsRooms(t *testing.T) {
	claims := &Claims{Email: "rina@example.com", Role: model.RoleStudent}
	rooms := claims.Rooms()
	if len(rooms) != 2 || rooms[0] != "student-room" || rooms[1] != "rina@example.com" {
		t.Fatalf("Rooms() = %v", rooms)
	}
}
