package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bookswipe/bookswipe-server/internal/domain"
	"github.com/bookswipe/bookswipe-server/internal/pkg/logger"
	"github.com/bookswipe/bookswipe-server/internal/repository"
)

type AuthUseCase struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	sessions  repository.SessionRepository
	jwtSecret string
	expiry    time.Duration
	log       *logger.Logger
}

func NewAuthUseCase(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	sessions repository.SessionRepository,
	jwtSecret string,
	expiryDays int,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:     users,
		profiles:  profiles,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		expiry:    time.Duration(expiryDays) * 24 * time.Hour,
		log:       log,
	}
}

// AuthResponse represents the authentication response
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
	IsNewUser bool         `json:"is_new_user"`
}

// Register creates a user with a bcrypt-hashed password, auto-creates
// an empty profile, and opens a session.
func (uc *AuthUseCase) Register(ctx context.Context, email, password, displayName string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	profile := &domain.Profile{UserID: user.ID}
	if displayName = strings.TrimSpace(displayName); displayName != "" {
		profile.DisplayName = &displayName
	}
	if err := uc.profiles.Create(ctx, profile); err != nil {
		// Don't fail registration over the profile row; the community
		// view tolerates a missing profile.
		uc.log.Warn("failed to create profile", "user_id", user.ID, "error", err)
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		IsNewUser: true,
	}, nil
}

// Login verifies credentials and opens a session.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.createSession(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// GetUser returns the account for an authenticated user id.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

// createSession creates a new session and returns a signed JWT.
func (uc *AuthUseCase) createSession(ctx context.Context, userID int64) (string, time.Time, error) {
	expiresAt := time.Now().Add(uc.expiry)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	})
	tokenString, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}

	session := &domain.Session{
		UserID:    userID,
		Token:     uc.hashToken(tokenString),
		ExpiresAt: expiresAt,
	}
	if err := uc.sessions.Create(ctx, session); err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// VerifyToken verifies a JWT and its backing session, returning the
// user id.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return []byte(uc.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, domain.ErrInvalidToken
	}

	session, err := uc.sessions.GetByToken(ctx, uc.hashToken(tokenString))
	if err != nil {
		return 0, domain.ErrSessionNotFound
	}
	if session.IsExpired() {
		return 0, domain.ErrSessionExpired
	}

	return int64(userID), nil
}

// Logout deletes the session backing the token.
func (uc *AuthUseCase) Logout(ctx context.Context, tokenString string) error {
	return uc.sessions.DeleteByToken(ctx, uc.hashToken(tokenString))
}

// hashToken creates SHA256 hash of token for storage
func (uc *AuthUseCase) hashToken(token string) string {
	h := sha256.New()
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}
