package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skbavi/supermarket-pos-api/internal/domain/entity"
	"github.com/skbavi/supermarket-pos-api/internal/domain/repository"
	"github.com/skbavi/supermarket-pos-api/pkg/apperror"
	"github.com/skbavi/supermarket-pos-api/pkg/email"
	"github.com/skbavi/supermarket-pos-api/pkg/oauth"
	"github.com/skbavi/supermarket-pos-api/pkg/utils"
)

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo          repository.UserRepository
	passwordResetRepo repository.PasswordResetTokenRepository
	jwtManager        *utils.JWTManager
	emailService      *email.Service
	googleService     *oauth.GoogleService
	logger            *zap.Logger
}

// NewAuthService creates a new auth service. emailService and googleService
// may be nil when the corresponding feature is not configured.
func NewAuthService(
	userRepo repository.UserRepository,
	passwordResetRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.Service,
	googleService *oauth.GoogleService,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:          userRepo,
		passwordResetRepo: passwordResetRepo,
		jwtManager:        jwtManager,
		emailService:      emailService,
		googleService:     googleService,
		logger:            logger,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens. A missing account and a
// wrong password produce the same error so login probing reveals nothing.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.NewPersistenceError("sign in")
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a new user account and signs it in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*LoginOutput, error) {
	if !utils.IsValidEmail(input.Email) {
		return nil, apperror.ErrInvalidEmail
	}
	if utils.IsWeakPassword(input.Password) {
		return nil, apperror.ErrWeakPassword
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, apperror.NewPersistenceError("register")
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewPersistenceError("register")
	}

	name := input.Name
	if name == "" {
		name = input.Email
	}
	user := &entity.User{
		Name:     name,
		Email:    input.Email,
		Password: hashed,
		Role:     entity.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperror.NewPersistenceError("register")
	}

	s.logger.Info("user registered", zap.String("email", user.Email))
	return s.issueTokens(user)
}

// RefreshToken validates a refresh token and issues a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("refresh session")
	}
	if user == nil {
		return nil, apperror.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// Profile returns the account behind an authenticated request
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewPersistenceError("load profile")
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword updates the password for an authenticated user
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return apperror.NewPersistenceError("change password")
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.ErrInvalidCredentials
	}
	if utils.IsWeakPassword(input.NewPassword) {
		return apperror.ErrWeakPassword
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return apperror.NewPersistenceError("change password")
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.NewPersistenceError("change password")
	}
	return nil
}

// ForgotPassword creates a reset token and emails it to the user. It succeeds
// silently for unknown addresses so the endpoint cannot enumerate accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperror.NewPersistenceError("request password reset")
	}
	if user == nil {
		return nil
	}
	if s.emailService == nil {
		s.logger.Warn("password reset requested but email is not configured",
			zap.String("email", emailAddr))
		return nil
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return apperror.NewPersistenceError("request password reset")
	}
	token := hex.EncodeToString(tokenBytes)

	resetToken := &entity.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := s.passwordResetRepo.Create(ctx, resetToken); err != nil {
		return apperror.NewPersistenceError("request password reset")
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, token); err != nil {
		s.logger.Error("failed to send password reset email",
			zap.String("email", user.Email), zap.Error(err))
		return apperror.NewPersistenceError("send password reset email")
	}
	return nil
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPassword completes a password reset started by ForgotPassword
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	if utils.IsWeakPassword(input.NewPassword) {
		return apperror.ErrWeakPassword
	}

	resetToken, err := s.passwordResetRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return apperror.NewPersistenceError("reset password")
	}
	if resetToken == nil || resetToken.Used || resetToken.IsExpired() {
		return apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, resetToken.UserID)
	if err != nil {
		return apperror.NewPersistenceError("reset password")
	}
	if user == nil {
		return apperror.ErrInvalidToken
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return apperror.NewPersistenceError("reset password")
	}
	user.Password = hashed
	if err := s.userRepo.Update(ctx, user); err != nil {
		return apperror.NewPersistenceError("reset password")
	}
	return s.passwordResetRepo.MarkUsed(ctx, resetToken.ID)
}

// GoogleAuthURL returns the Google consent screen URL for the given state
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.googleService == nil || !s.googleService.IsConfigured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.googleService.AuthURL(state), nil
}

// GoogleCallback exchanges the OAuth code, then finds or creates the matching
// account and signs it in.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if s.googleService == nil || !s.googleService.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	token, err := s.googleService.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}
	info, err := s.googleService.UserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	user, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		return nil, apperror.NewPersistenceError("sign in with Google")
	}
	if user == nil {
		user = &entity.User{
			Name:       info.Name,
			Email:      info.Email,
			Role:       entity.RoleUser,
			Provider:   "google",
			ProviderID: &info.ID,
		}
		if info.Picture != "" {
			user.Photo = &info.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, apperror.NewPersistenceError("sign in with Google")
		}
		s.logger.Info("user created via Google sign-in", zap.String("email", user.Email))
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, apperror.NewPersistenceError("sign in")
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, apperror.NewPersistenceError("sign in")
	}
	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
