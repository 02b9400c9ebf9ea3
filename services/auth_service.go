package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/burnboard/dto"
	"github.com/burnboard/models"
	"github.com/burnboard/utils"
)

// UserStore is the persistence surface for accounts.
type UserStore interface {
	FindByID(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	Create(user models.User) (models.User, error)
	UpdateFields(id string, fields map[string]interface{}) error
}

// TokenStore holds one-shot verification and reset tokens.
type TokenStore interface {
	SaveVerifyToken(ctx context.Context, token, userID string) error
	ConsumeVerifyToken(ctx context.Context, token string) (string, error)
	SaveResetToken(ctx context.Context, token, userID string) error
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

// MailPublisher emits mail events for the mail consumer to deliver.
type MailPublisher interface {
	Publish(routingKey string, payload any) error
}

// AuthService owns registration, login and account maintenance.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	mail   MailPublisher
	logger *zap.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(users UserStore, tokens TokenStore, mail MailPublisher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		mail:   mail,
		logger: logger,
	}
}

// Register creates a new user account and queues a verification email.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if _, err := s.users.FindByEmail(req.Email); err == nil {
		return nil, errors.New("email already registered")
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(models.User{
		Email:    req.Email,
		Password: string(hashedPassword),
		Name:     req.Name,
	})
	if err != nil {
		return nil, err
	}

	s.sendVerificationMail(ctx, user)

	user.Password = ""
	return &user, nil
}

// Login authenticates a user and returns a token
func (s *AuthService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.FindByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, expiresAt, err := GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	// Clear password from response
	user.Password = ""

	return &dto.AuthResponse{
		Token:     token,
		User:      user,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return &user, nil
}

// UpdateProfile changes the display name of the acting user.
func (s *AuthService) UpdateProfile(userID, name string) (*models.User, error) {
	if err := s.users.UpdateFields(userID, map[string]interface{}{"name": name}); err != nil {
		return nil, err
	}
	return s.GetUser(userID)
}

// UpdatePassword changes the password after re-proving the current one.
func (s *AuthService) UpdatePassword(userID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdateFields(userID, map[string]interface{}{"password": string(hashedPassword)})
}

// VerifyEmail confirms the address tied to a mailed token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	userID, err := s.tokens.ConsumeVerifyToken(ctx, token)
	if err != nil {
		return errors.New("invalid or expired verification token")
	}

	return s.users.UpdateFields(userID, map[string]interface{}{"email_verified": true})
}

// ResendVerification queues another verification email for the acting user.
func (s *AuthService) ResendVerification(ctx context.Context, userID string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return errors.New("email already verified")
	}

	s.sendVerificationMail(ctx, user)
	return nil
}

// RequestPasswordReset queues a reset email. It reveals nothing about
// whether the address is registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil
		}
		return err
	}

	token := utils.GenerateToken()
	if err := s.tokens.SaveResetToken(ctx, token, user.ID); err != nil {
		return err
	}

	if err := s.mail.Publish(RoutePasswordResetMail, dto.PasswordResetMailPayload{
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}); err != nil {
		s.logger.Error("Failed to publish password reset mail", zap.Error(err))
		return err
	}
	return nil
}

// ResetPassword sets a new password with a mailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		return errors.New("invalid or expired reset token")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.users.UpdateFields(userID, map[string]interface{}{"password": string(hashedPassword)})
}

// sendVerificationMail stores a fresh token and publishes the mail event.
// Failures are logged but never fail the calling operation; the user can
// always request another mail.
func (s *AuthService) sendVerificationMail(ctx context.Context, user models.User) {
	token := utils.GenerateToken()
	if err := s.tokens.SaveVerifyToken(ctx, token, user.ID); err != nil {
		s.logger.Error("Failed to store verification token", zap.Error(err))
		return
	}

	if err := s.mail.Publish(RouteVerificationMail, dto.VerificationMailPayload{
		Email: user.Email,
		Name:  user.Name,
		Token: token,
	}); err != nil {
		s.logger.Error("Failed to publish verification mail", zap.Error(err))
	}
}

// GenerateToken generates a new JWT session token for a user
func GenerateToken(userID, email string) (string, time.Time, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return "", time.Time{}, errors.New("JWT_SECRET not set in environment")
	}

	// Token expires in 24 hours
	expiresAt := time.Now().Add(24 * time.Hour)

	claims := dto.TokenClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a JWT session token and returns claims if valid
func ValidateToken(tokenString string) (*dto.TokenClaims, error) {
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		return nil, errors.New("JWT_SECRET not set in environment")
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(*dto.TokenClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}
