package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"device-hub/entities"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserSource is the slice of the user repository the credential service needs.
type UserSource interface {
	GetByUsername(username string) (*entities.User, error)
	GetByID(id uint) (*entities.User, error)
}

// Service issues and validates bearer tokens. The signing secret is loaded
// once at startup and injected here; it is never logged.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// IssueToken creates a signed HS256 JWT whose subject is the user id and
// whose expiry is now + the configured TTL.
func (s *Service) IssueToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates signature and expiry and returns the subject user id.
// Expired tokens and malformed/tampered tokens return distinct errors so the
// caller can log them apart, but both must surface as unauthorized.
func (s *Service) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: %w", ErrExpiredToken, err)
		}
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return uint(userID), nil
}

// Authenticate looks up the user by exact username and verifies the password.
// A missing user, a wrong password and an inactive account all fail with
// ErrInvalidCredentials, and the missing-user path still performs a bcrypt
// comparison so its timing matches the wrong-password path.
func (s *Service) Authenticate(users UserSource, username, password string) (*entities.User, error) {
	user, err := users.GetByUsername(username)
	if err != nil {
		CheckPassword(password, dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ResolveCaller validates a bearer token and loads the user it names.
func (s *Service) ResolveCaller(users UserSource, tokenString string) (*entities.User, error) {
	userID, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown subject", ErrInvalidToken)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: inactive account", ErrInvalidToken)
	}

	return user, nil
}
