package services

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/storehubhq/storehub-backend/internal/apperr"
	"github.com/storehubhq/storehub-backend/internal/config"
	"github.com/storehubhq/storehub-backend/internal/dto"
	"github.com/storehubhq/storehub-backend/internal/models"
	"github.com/storehubhq/storehub-backend/internal/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const googleProvider = "google"

// tokenVerifier lets tests stand in for the Google JWKS client.
type tokenVerifier interface {
	VerifyToken(identityToken, audience string) (*GoogleClaims, error)
}

type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	verifier tokenVerifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		verifier: NewGoogleJWKSClient(),
	}
}

func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := validation.Register(req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleCustomer,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Internal("failed to create user", err)
	}

	return s.generateTokenPair(&user)
}

// Login deliberately reports the same error for an unknown email and a
// wrong password.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := validation.Login(req); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if user.Password == "" {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	return s.generateTokenPair(&user)
}

// Refresh rotates the presented refresh token: the old one is revoked
// whether or not a new pair is issued.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.Where("token_hash = ? AND revoked = ?", tokenHash, false).First(&stored).Error; err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	s.db.Model(&stored).Update("revoked", true)

	var user models.User
	if err := s.db.First(&user, "id = ?", stored.UserID).Error; err != nil {
		return nil, apperr.Unauthorized("invalid or expired refresh token")
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) Logout(req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	err := s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
	if err != nil {
		return apperr.Internal("failed to revoke refresh token", err)
	}
	return nil
}

// GoogleSignIn exchanges a verified Google ID token for a local session.
// The account row is keyed by (provider, provider_account_id); an email
// already registered through another sign-in method is rejected.
func (s *AuthService) GoogleSignIn(req *dto.GoogleSignInRequest) (*dto.AuthResponse, error) {
	if req.IdentityToken == "" {
		return nil, apperr.Validation(apperr.FieldError{
			Path: "identity_token", Message: "identity_token is required",
		})
	}

	claims, err := s.verifier.VerifyToken(req.IdentityToken, s.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "error", err)
		return nil, apperr.Unauthorized("failed to verify identity token")
	}

	var account models.Account
	err = s.db.Where("provider = ? AND provider_account_id = ?", googleProvider, claims.Sub).
		First(&account).Error
	if err == nil {
		var user models.User
		if err := s.db.First(&user, "id = ?", account.UserID).Error; err != nil {
			return nil, apperr.Internal("failed to load federated user", err)
		}
		return s.generateTokenPair(&user)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Internal("failed to look up account", err)
	}

	email := claims.Email
	if email == "" {
		return nil, apperr.Unauthorized("identity token carries no email")
	}

	var collision models.User
	if err := s.db.Where("email = ?", email).First(&collision).Error; err == nil {
		return nil, apperr.Conflict("email already registered with another sign-in method")
	}

	name := claims.Name
	if name == "" {
		name = req.Name
	}
	if name == "" {
		name = strings.Split(email, "@")[0]
	}

	user := models.User{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
		Role:  models.RoleCustomer,
	}
	if claims.Picture != "" {
		user.ImageURL = &claims.Picture
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Account{
			ID:                uuid.New(),
			UserID:            user.ID,
			Provider:          googleProvider,
			ProviderAccountID: claims.Sub,
		}).Error
	})
	if err != nil {
		return nil, apperr.Internal("failed to create federated user", err)
	}

	return s.generateTokenPair(&user)
}

func (s *AuthService) generateTokenPair(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperr.Internal("failed to sign access token", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Role:     user.Role,
			ImageURL: user.ImageURL,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", apperr.Internal("failed to generate refresh token", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", apperr.Internal("failed to store refresh token", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
